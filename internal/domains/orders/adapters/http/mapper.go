package http

import (
	"time"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
	"github.com/foodorder/go-gin-services/internal/shared/pagination"
)

// createOrderRequest is the inbound creation payload. Pointer fields preserve
// presence so a missing quantity is distinguishable from zero.
type createOrderRequest struct {
	UserID     string   `json:"user_id"`
	MenuItemID string   `json:"menu_item_id"`
	Quantity   *int     `json:"quantity"`
	TotalPrice *float64 `json:"total_price"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateQuantityRequest struct {
	Quantity   *int     `json:"quantity"`
	TotalPrice *float64 `json:"total_price"`
}

type bulkStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// orderView is the wire representation of an order.
type orderView struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	MenuItemID string    `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type orderEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    orderView `json:"data"`
}

type orderListEnvelope struct {
	Success    bool             `json:"success"`
	Data       []orderView      `json:"data"`
	Pagination *pagination.View `json:"pagination,omitempty"`
	Count      *int             `json:"count,omitempty"`
	UserID     string           `json:"user_id,omitempty"`
	Status     string           `json:"status,omitempty"`
}

type bulkStatusEnvelope struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	UpdatedCount int64  `json:"updated_count"`
}

type statusBreakdownView struct {
	Status     string  `json:"status"`
	Count      int64   `json:"count"`
	TotalValue float64 `json:"total_value"`
}

type statsView struct {
	TotalOrders     int64                 `json:"totalOrders"`
	TotalRevenue    float64               `json:"totalRevenue"`
	StatusBreakdown []statusBreakdownView `json:"statusBreakdown"`
}

type userStatsView struct {
	UserID          string                `json:"user_id"`
	TotalOrders     int64                 `json:"total_orders"`
	TotalSpent      float64               `json:"total_spent"`
	StatusBreakdown []statusBreakdownView `json:"status_breakdown"`
}

func fromDomainOrder(order *domain.Order) orderView {
	return orderView{
		ID:         order.ID,
		UserID:     order.UserID,
		MenuItemID: order.MenuItemID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func fromDomainOrders(orders []*domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, fromDomainOrder(order))
	}
	return views
}

func fromBreakdown(breakdown []ports.StatusBreakdown) []statusBreakdownView {
	views := make([]statusBreakdownView, 0, len(breakdown))
	for _, bucket := range breakdown {
		views = append(views, statusBreakdownView{
			Status:     string(bucket.Status),
			Count:      bucket.Count,
			TotalValue: bucket.TotalValue,
		})
	}
	return views
}
