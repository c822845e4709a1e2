package application

import (
	"context"
	"fmt"
	"math"

	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
	"github.com/foodorder/go-gin-services/internal/domains/menu/ports"
)

// SortableFields is the allow-list of catalog columns a client may sort by.
var SortableFields = []string{"name", "price", "created_at", "updated_at"}

const (
	defaultSortField = "name"
	defaultPageLimit = 20
)

// Service orchestrates the menu catalog use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateItem persists a new catalog item. Availability defaults to true so a
// freshly added dish is orderable immediately.
func (s *Service) CreateItem(ctx context.Context, input ports.ItemInput) (*domain.Item, error) {
	item, err := buildItem(input)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Insert(ctx, item)
}

// CreateItems inserts a batch of items; the whole batch is rejected when any
// entry fails validation, before anything is written.
func (s *Service) CreateItems(ctx context.Context, inputs []ports.ItemInput) ([]*domain.Item, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: items list must not be empty", ErrInvalidInput)
	}
	items := make([]*domain.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := buildItem(input)
		if err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}
	return s.repo.InsertMany(ctx, items)
}

// GetItem loads a single item by id.
func (s *Service) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// ListItems returns one page of the catalog.
func (s *Service) ListItems(ctx context.Context, input ports.ListItemsInput) (*ports.ItemPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	sortBy := defaultSortField
	for _, field := range SortableFields {
		if input.SortBy == field {
			sortBy = field
			break
		}
	}
	items, total, err := s.repo.List(ctx, ports.ListQuery{
		Offset:   (page - 1) * limit,
		Limit:    limit,
		SortBy:   sortBy,
		SortDesc: input.SortDesc,
	})
	if err != nil {
		return nil, err
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &ports.ItemPage{Items: items, TotalItems: total, TotalPages: totalPages}, nil
}

// ListAvailable returns only orderable items, name ascending.
func (s *Service) ListAvailable(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.FindAvailable(ctx)
}

// Search matches dish names case-insensitively.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Item, error) {
	return s.repo.SearchByName(ctx, query)
}

// FilterByPrice returns items priced inside [min, max], cheapest first.
// Non-positive or unset bounds fall back to the widest range.
func (s *Service) FilterByPrice(ctx context.Context, min, max float64) ([]*domain.Item, error) {
	if min < 0 || math.IsNaN(min) {
		min = 0
	}
	if max <= 0 || math.IsNaN(max) {
		max = math.MaxFloat64
	}
	return s.repo.FilterByPrice(ctx, ports.PriceRange{Min: min, Max: max})
}

// UpdateItem applies a partial mutation to an existing item.
func (s *Service) UpdateItem(ctx context.Context, id string, input ports.ItemInput) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyInput(item, input); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, item)
}

// ToggleItem flips availability, the storefront admin's enable/disable action.
func (s *Service) ToggleItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Toggle()
	return s.repo.Save(ctx, item)
}

// DeleteItem removes an item. Existing orders referencing it are untouched:
// there is no cascading delete across services.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// BulkSetAvailability flips availability on an id set and reports the count
// actually modified.
func (s *Service) BulkSetAvailability(ctx context.Context, ids []string, available bool) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids list must not be empty", ErrInvalidInput)
	}
	return s.repo.BulkSetAvailability(ctx, ids, available)
}

func buildItem(input ports.ItemInput) (*domain.Item, error) {
	if input.Name == nil {
		return nil, domain.ErrInvalidName
	}
	if input.Price == nil {
		return nil, domain.ErrInvalidPrice
	}
	imageURL := ""
	if input.ImageURL != nil {
		imageURL = *input.ImageURL
	}
	available := true
	if input.Available != nil {
		available = *input.Available
	}
	return domain.NewItem(*input.Name, *input.Price, imageURL, available)
}

func applyInput(item *domain.Item, input ports.ItemInput) error {
	if input.Name != nil {
		if err := item.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Price != nil {
		if err := item.ChangePrice(*input.Price); err != nil {
			return err
		}
	}
	if input.ImageURL != nil {
		if err := item.SetImageURL(*input.ImageURL); err != nil {
			return err
		}
	}
	if input.Available != nil {
		item.SetAvailability(*input.Available)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
