package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order ledger used for local development and
// tests. It mirrors the postgres adapter's semantics, including sort fields
// and the silent skip on bulk updates.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) Insert(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	clone := *order
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *Repository) List(_ context.Context, query ports.ListQuery) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	all := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		clone := *order
		all = append(all, &clone)
	}
	r.mu.RUnlock()

	sortOrders(all, query.SortBy, query.SortDesc)
	total := int64(len(all))
	if query.Offset >= len(all) {
		return []*domain.Order{}, total, nil
	}
	end := query.Offset + query.Limit
	if query.Limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[query.Offset:end], total, nil
}

func (r *Repository) FindByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

func (r *Repository) FindByStatus(_ context.Context, status domain.Status) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.Status == status }), nil
}

func (r *Repository) Update(_ context.Context, id string, update ports.FieldUpdate) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if update.Status != nil {
		order.Status = *update.Status
	}
	if update.Quantity != nil {
		order.Quantity = *update.Quantity
	}
	if update.TotalPrice != nil {
		order.TotalPrice = *update.TotalPrice
	}
	order.UpdatedAt = time.Now().UTC()
	clone := *order
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *Repository) BulkUpdateStatus(_ context.Context, ids []string, status domain.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	now := time.Now().UTC()
	for _, id := range ids {
		order, ok := r.orders[id]
		if !ok {
			continue
		}
		order.Status = status
		order.UpdatedAt = now
		updated++
	}
	return updated, nil
}

func (r *Repository) GroupByStatus(_ context.Context, userID string) ([]ports.StatusBucket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byStatus := map[domain.Status]*ports.StatusBucket{}
	for _, order := range r.orders {
		if userID != "" && order.UserID != userID {
			continue
		}
		bucket, ok := byStatus[order.Status]
		if !ok {
			bucket = &ports.StatusBucket{Status: order.Status}
			byStatus[order.Status] = bucket
		}
		bucket.Count++
		bucket.TotalValue += order.TotalPrice
	}
	buckets := make([]ports.StatusBucket, 0, len(byStatus))
	for _, status := range domain.Statuses {
		if bucket, ok := byStatus[status]; ok {
			buckets = append(buckets, *bucket)
		}
	}
	return buckets, nil
}

// filter returns matching orders newest first, as the find-by queries promise.
func (r *Repository) filter(match func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if match(order) {
			clone := *order
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func sortOrders(orders []*domain.Order, sortBy string, desc bool) {
	less := func(i, j int) bool {
		a, b := orders[i], orders[j]
		switch sortBy {
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "total_price":
			return a.TotalPrice < b.TotalPrice
		case "quantity":
			return a.Quantity < b.Quantity
		case "status":
			return a.Status < b.Status
		case "user_id":
			return a.UserID < b.UserID
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	if desc {
		sort.Slice(orders, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.Slice(orders, less)
}
