package ports

import (
	"context"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
)

// PlaceOrderInput is the client-declared order request. TotalPrice is what the
// storefront computed; the service re-computes and compares.
type PlaceOrderInput struct {
	UserID     string
	MenuItemID string
	Quantity   int
	TotalPrice float64
}

// ListOrdersInput selects a page of the ledger.
type ListOrdersInput struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// OrderPage is one page of orders plus the totals needed for the pagination
// envelope.
type OrderPage struct {
	Orders     []*domain.Order
	TotalItems int64
	TotalPages int64
}

// StatusBreakdown mirrors StatusBucket for service consumers.
type StatusBreakdown struct {
	Status     domain.Status
	Count      int64
	TotalValue float64
}

// Stats aggregates the whole ledger grouped by status.
type Stats struct {
	TotalOrders  int64
	TotalRevenue float64
	Breakdown    []StatusBreakdown
}

// UserStats is the per-user variant of Stats.
type UserStats struct {
	UserID      string
	TotalOrders int64
	TotalSpent  float64
	Breakdown   []StatusBreakdown
}

// Service exposes the order lifecycle use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*OrderPage, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	UpdateQuantity(ctx context.Context, id string, quantity int, totalPrice float64) (*domain.Order, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status string) (int64, error)
	DeleteOrder(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
	UserStats(ctx context.Context, userID string) (*UserStats, error)
}
