package http

import (
	"time"

	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
	"github.com/foodorder/go-gin-services/internal/domains/menu/ports"
	"github.com/foodorder/go-gin-services/internal/shared/pagination"
)

// itemRequest is the inbound create/update payload. Pointer fields preserve
// presence for partial updates.
type itemRequest struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	ImageURL  *string  `json:"image_url"`
	Available *bool    `json:"status"`
}

type bulkItemsRequest struct {
	Items []itemRequest `json:"items"`
}

type bulkAvailabilityRequest struct {
	IDs       []string `json:"ids"`
	Available *bool    `json:"status"`
}

// itemView is the wire representation consumed by the storefront and by the
// order service's verification gateway.
type itemView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	Available bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type itemEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    itemView `json:"data"`
}

type itemListEnvelope struct {
	Success    bool             `json:"success"`
	Data       []itemView       `json:"data"`
	Pagination *pagination.View `json:"pagination,omitempty"`
	Count      *int             `json:"count,omitempty"`
	Query      string           `json:"query,omitempty"`
	Filter     *priceFilterView `json:"filter,omitempty"`
}

type priceFilterView struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}

func toItemInput(payload itemRequest) ports.ItemInput {
	return ports.ItemInput{
		Name:      payload.Name,
		Price:     payload.Price,
		ImageURL:  payload.ImageURL,
		Available: payload.Available,
	}
}

func fromDomainItem(item *domain.Item) itemView {
	return itemView{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		ImageURL:  item.ImageURL,
		Available: item.Available,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func fromDomainItems(items []*domain.Item) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, fromDomainItem(item))
	}
	return views
}
