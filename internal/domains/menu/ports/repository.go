package ports

import (
	"context"
	"errors"

	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
)

var ErrNotFound = errors.New("menu item not found")

// ListQuery narrows and orders a catalog scan. SortBy is a storage column
// name from the allow-list upstream.
type ListQuery struct {
	Offset   int
	Limit    int
	SortBy   string
	SortDesc bool
}

// PriceRange is an inclusive price filter.
type PriceRange struct {
	Min float64
	Max float64
}

// Repository persists the menu catalog. The catalog is the sole authority for
// item price and availability.
type Repository interface {
	Insert(ctx context.Context, item *domain.Item) (*domain.Item, error)
	InsertMany(ctx context.Context, items []*domain.Item) ([]*domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, query ListQuery) ([]*domain.Item, int64, error)
	// FindAvailable returns orderable items sorted by name ascending.
	FindAvailable(ctx context.Context) ([]*domain.Item, error)
	// SearchByName matches a case-insensitive substring, sorted by name.
	SearchByName(ctx context.Context, query string) ([]*domain.Item, error)
	// FilterByPrice returns items inside the range, cheapest first.
	FilterByPrice(ctx context.Context, priceRange PriceRange) ([]*domain.Item, error)
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
	// BulkSetAvailability flips availability for every matching id and
	// returns the count actually modified.
	BulkSetAvailability(ctx context.Context, ids []string, available bool) (int64, error)
}
