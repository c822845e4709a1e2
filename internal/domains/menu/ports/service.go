package ports

import (
	"context"

	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
)

// ItemInput carries the mutable fields of a catalog item. Pointer fields keep
// partial updates distinguishable from zero values.
type ItemInput struct {
	Name      *string
	Price     *float64
	ImageURL  *string
	Available *bool
}

// ListItemsInput selects a page of the catalog.
type ListItemsInput struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// ItemPage is one page of items plus pagination totals.
type ItemPage struct {
	Items      []*domain.Item
	TotalItems int64
	TotalPages int64
}

// Service exposes the catalog use cases to adapters.
type Service interface {
	CreateItem(ctx context.Context, input ItemInput) (*domain.Item, error)
	CreateItems(ctx context.Context, inputs []ItemInput) ([]*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context, input ListItemsInput) (*ItemPage, error)
	ListAvailable(ctx context.Context) ([]*domain.Item, error)
	Search(ctx context.Context, query string) ([]*domain.Item, error)
	FilterByPrice(ctx context.Context, min, max float64) ([]*domain.Item, error)
	UpdateItem(ctx context.Context, id string, input ItemInput) (*domain.Item, error)
	ToggleItem(ctx context.Context, id string) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	BulkSetAvailability(ctx context.Context, ids []string, available bool) (int64, error)
}
