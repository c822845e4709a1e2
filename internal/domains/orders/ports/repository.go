package ports

import (
	"context"
	"errors"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// ListQuery narrows and orders a ledger scan. SortBy is a storage column name
// taken from the allow-list upstream, never raw client input.
type ListQuery struct {
	Offset   int
	Limit    int
	SortBy   string
	SortDesc bool
}

// FieldUpdate carries a partial mutation applied by id. Nil fields are left
// untouched; any applied update bumps updated_at.
type FieldUpdate struct {
	Status     *domain.Status
	Quantity   *int
	TotalPrice *float64
}

// StatusBucket is one row of the group-by-status aggregation.
type StatusBucket struct {
	Status     domain.Status
	Count      int64
	TotalValue float64
}

// Repository is the order ledger: the sole authority for order state. All
// access is keyed by the opaque order id.
type Repository interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, query ListQuery) ([]*domain.Order, int64, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	Update(ctx context.Context, id string, update FieldUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	// BulkUpdateStatus applies one status to every matching id in a single
	// set-based update and returns the count actually modified. Unknown ids
	// are skipped silently.
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error)
	// GroupByStatus aggregates count and summed total_price per status,
	// optionally filtered to one user (empty userID means all orders).
	GroupByStatus(ctx context.Context, userID string) ([]StatusBucket, error)
}
