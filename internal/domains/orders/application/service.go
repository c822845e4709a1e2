package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
)

// SortableFields is the allow-list of ledger columns a client may sort by.
var SortableFields = []string{"created_at", "updated_at", "total_price", "quantity", "status", "user_id"}

const (
	defaultSortField = "created_at"
	defaultPageLimit = 20
)

// Service orchestrates the order lifecycle: creation with catalog
// verification and price checking, status transitions, bulk mutations, and
// aggregate statistics.
type Service struct {
	repo     ports.Repository
	verifier ports.ItemVerifier
}

// NewService wires the order service with its ledger and catalog verifier.
func NewService(repo ports.Repository, verifier ports.ItemVerifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

// PlaceOrder runs the creation sequence: validate shape, verify the menu item
// reference, check the declared total, then persist. Cheap local checks come
// first so the cross-service call only happens for well-formed requests, and
// nothing is written until every check has passed.
//
// The catalog is checked optimistically: no lock or transaction spans the
// verify-then-insert window, so the item can vanish between the two steps.
// The reconciler job sweeps pending orders to compensate.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(input.UserID, input.MenuItemID, input.Quantity, input.TotalPrice)
	if err != nil {
		return nil, mapError(err)
	}

	item, err := s.verifier.Verify(ctx, order.MenuItemID)
	if err != nil {
		return nil, ports.ErrItemUnavailable
	}
	if !item.Available {
		return nil, ports.ErrItemUnavailable
	}

	if !domain.MatchesTotal(item.Price, order.Quantity, order.TotalPrice) {
		return nil, &PriceMismatchError{
			Expected: item.Price * float64(order.Quantity),
			Received: order.TotalPrice,
		}
	}

	return s.repo.Insert(ctx, order)
}

// GetOrder loads a single order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns one page of the ledger with pagination totals.
func (s *Service) ListOrders(ctx context.Context, input ports.ListOrdersInput) (*ports.OrderPage, error) {
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

	orders, total, err := s.repo.List(ctx, ports.ListQuery{
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
	return &ports.OrderPage{Orders: orders, TotalItems: total, TotalPages: totalPages}, nil
}

// ListByUser returns a user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.FindByUser(ctx, userID)
}

// ListByStatus returns orders in one status, newest first.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]*domain.Order, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStatus(ctx, parsed)
}

// UpdateStatus moves an order to any status in the enumeration. There is no
// transition graph: delivered orders may be re-opened.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, ports.FieldUpdate{Status: &parsed})
}

// UpdateQuantity persists a new quantity and total verbatim. Unlike creation,
// the catalog is not consulted; see the reconciler for the compensating sweep.
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int, totalPrice float64) (*domain.Order, error) {
	var probe domain.Order
	if err := probe.Reprice(quantity, totalPrice); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, id, ports.FieldUpdate{Quantity: &quantity, TotalPrice: &totalPrice})
}

// BulkUpdateStatus applies one status to a set of orders and reports the
// count actually modified. Ids that match nothing are skipped silently.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: order id list must not be empty", ErrInvalidInput)
	}
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return 0, err
	}
	return s.repo.BulkUpdateStatus(ctx, ids, parsed)
}

// DeleteOrder removes an order by id.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats aggregates the whole ledger: per-status counts and revenue plus grand
// totals derived from the same buckets, so the sums always reconcile.
func (s *Service) Stats(ctx context.Context) (*ports.Stats, error) {
	buckets, err := s.repo.GroupByStatus(ctx, "")
	if err != nil {
		return nil, err
	}
	breakdown, totalOrders, totalValue := summarize(buckets)
	return &ports.Stats{TotalOrders: totalOrders, TotalRevenue: totalValue, Breakdown: breakdown}, nil
}

// UserStats is the per-user variant of Stats.
func (s *Service) UserStats(ctx context.Context, userID string) (*ports.UserStats, error) {
	buckets, err := s.repo.GroupByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	breakdown, totalOrders, totalSpent := summarize(buckets)
	return &ports.UserStats{UserID: userID, TotalOrders: totalOrders, TotalSpent: totalSpent, Breakdown: breakdown}, nil
}

func summarize(buckets []ports.StatusBucket) ([]ports.StatusBreakdown, int64, float64) {
	breakdown := make([]ports.StatusBreakdown, 0, len(buckets))
	var count int64
	var value float64
	for _, bucket := range buckets {
		breakdown = append(breakdown, ports.StatusBreakdown(bucket))
		count += bucket.Count
		value += bucket.TotalValue
	}
	return breakdown, count, value
}

// IsNotFound reports whether the error is the ledger's missing-id error.
func IsNotFound(err error) bool {
	return errors.Is(err, ports.ErrNotFound)
}

var _ ports.Service = (*Service)(nil)
