package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
	"github.com/foodorder/go-gin-services/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog used for local development and tests.
type Repository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func NewRepository() *Repository {
	return &Repository{items: map[string]*domain.Item{}}
}

func (r *Repository) Insert(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	clone := *item
	r.mu.Lock()
	r.items[clone.ID] = &clone
	r.mu.Unlock()
	result := clone
	return &result, nil
}

func (r *Repository) InsertMany(ctx context.Context, items []*domain.Item) ([]*domain.Item, error) {
	saved := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		inserted, err := r.Insert(ctx, item)
		if err != nil {
			return nil, err
		}
		saved = append(saved, inserted)
	}
	return saved, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) List(_ context.Context, query ports.ListQuery) ([]*domain.Item, int64, error) {
	all := r.snapshot(func(*domain.Item) bool { return true })
	sortItems(all, query.SortBy, query.SortDesc)
	total := int64(len(all))
	if query.Offset >= len(all) {
		return []*domain.Item{}, total, nil
	}
	end := query.Offset + query.Limit
	if query.Limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[query.Offset:end], total, nil
}

func (r *Repository) FindAvailable(_ context.Context) ([]*domain.Item, error) {
	items := r.snapshot(func(i *domain.Item) bool { return i.Available })
	sortItems(items, "name", false)
	return items, nil
}

func (r *Repository) SearchByName(_ context.Context, query string) ([]*domain.Item, error) {
	needle := strings.ToLower(query)
	items := r.snapshot(func(i *domain.Item) bool {
		return strings.Contains(strings.ToLower(i.Name), needle)
	})
	sortItems(items, "name", false)
	return items, nil
}

func (r *Repository) FilterByPrice(_ context.Context, priceRange ports.PriceRange) ([]*domain.Item, error) {
	items := r.snapshot(func(i *domain.Item) bool {
		return i.Price >= priceRange.Min && i.Price <= priceRange.Max
	})
	sortItems(items, "price", false)
	return items, nil
}

func (r *Repository) Save(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	r.items[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Repository) BulkSetAvailability(_ context.Context, ids []string, available bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	now := time.Now().UTC()
	for _, id := range ids {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		item.Available = available
		item.UpdatedAt = now
		updated++
	}
	return updated, nil
}

func (r *Repository) snapshot(match func(*domain.Item) bool) []*domain.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		if match(item) {
			clone := *item
			items = append(items, &clone)
		}
	}
	return items
}

func sortItems(items []*domain.Item, sortBy string, desc bool) {
	less := func(i, j int) bool {
		a, b := items[i], items[j]
		switch sortBy {
		case "price":
			return a.Price < b.Price
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.Name < b.Name
		}
	}
	if desc {
		sort.Slice(items, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.Slice(items, less)
}
