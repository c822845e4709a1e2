package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	ordermemory "github.com/foodorder/go-gin-services/internal/domains/orders/adapters/memory"
	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
)

// stubVerifier serves a fixed catalog keyed by item id.
type stubVerifier struct {
	items map[string]ports.CatalogItem
	err   error
	calls int
}

func (v *stubVerifier) Verify(_ context.Context, menuItemID string) (*ports.CatalogItem, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	item, ok := v.items[menuItemID]
	if !ok {
		return nil, ports.ErrItemUnavailable
	}
	return &item, nil
}

func newTestService(verifier *stubVerifier) (*Service, *ordermemory.Repository) {
	repo := ordermemory.NewRepository()
	return NewService(repo, verifier), repo
}

func burgerVerifier() *stubVerifier {
	return &stubVerifier{items: map[string]ports.CatalogItem{
		"item-1": {ID: "item-1", Name: "Burger", Price: 10.00, Available: true},
	}}
}

func TestPlaceOrder_Success(t *testing.T) {
	verifier := burgerVerifier()
	svc, repo := newTestService(verifier)

	order, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID:     "user-1",
		MenuItemID: "item-1",
		Quantity:   3,
		TotalPrice: 30.00,
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, 1, verifier.calls)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, 30.00, stored.TotalPrice)
	require.False(t, stored.CreatedAt.IsZero())
}

func TestPlaceOrder_TotalWithinTolerance(t *testing.T) {
	for _, total := range []float64{29.99, 30.00, 30.01} {
		svc, _ := newTestService(burgerVerifier())
		_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
			UserID:     "user-1",
			MenuItemID: "item-1",
			Quantity:   3,
			TotalPrice: total,
		})
		require.NoError(t, err, "total %.2f should be within tolerance", total)
	}
}

func TestPlaceOrder_PriceMismatch(t *testing.T) {
	svc, repo := newTestService(burgerVerifier())

	_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID:     "user-1",
		MenuItemID: "item-1",
		Quantity:   3,
		TotalPrice: 25.00,
	})

	var mismatch *PriceMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, 30.00, mismatch.Expected)
	require.Equal(t, 25.00, mismatch.Received)

	_, total, err := repo.List(context.Background(), ports.ListQuery{Limit: 10, SortBy: "created_at"})
	require.NoError(t, err)
	require.Zero(t, total, "rejected order must not be persisted")
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	svc, repo := newTestService(burgerVerifier())

	_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID:     "user-1",
		MenuItemID: "item-404",
		Quantity:   1,
		TotalPrice: 10.00,
	})

	require.ErrorIs(t, err, ports.ErrItemUnavailable)
	_, total, err := repo.List(context.Background(), ports.ListQuery{Limit: 10, SortBy: "created_at"})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestPlaceOrder_DisabledItem(t *testing.T) {
	verifier := &stubVerifier{items: map[string]ports.CatalogItem{
		"item-1": {ID: "item-1", Name: "Burger", Price: 10.00, Available: false},
	}}
	svc, _ := newTestService(verifier)

	_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID:     "user-1",
		MenuItemID: "item-1",
		Quantity:   1,
		TotalPrice: 10.00,
	})
	require.ErrorIs(t, err, ports.ErrItemUnavailable)
}

func TestPlaceOrder_VerifierFailureFailsClosed(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("connection refused")}
	svc, repo := newTestService(verifier)

	_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID:     "user-1",
		MenuItemID: "item-1",
		Quantity:   1,
		TotalPrice: 10.00,
	})

	require.ErrorIs(t, err, ports.ErrItemUnavailable)
	_, total, err := repo.List(context.Background(), ports.ListQuery{Limit: 10, SortBy: "created_at"})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	verifier := burgerVerifier()
	svc, _ := newTestService(verifier)

	cases := []ports.PlaceOrderInput{
		{MenuItemID: "item-1", Quantity: 1, TotalPrice: 10},
		{UserID: "user-1", Quantity: 1, TotalPrice: 10},
		{UserID: "user-1", MenuItemID: "item-1", Quantity: 0, TotalPrice: 10},
		{UserID: "user-1", MenuItemID: "item-1", Quantity: 1, TotalPrice: -1},
	}
	for _, input := range cases {
		_, err := svc.PlaceOrder(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
	require.Zero(t, verifier.calls, "malformed input must not reach the catalog")
}

func TestUpdateStatus_Valid(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	order := mustPlace(t, svc, "user-1", 1, 10.00)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "delivered")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, updated.Status)

	// No transition graph: delivered may go back to preparing.
	reopened, err := svc.UpdateStatus(context.Background(), order.ID, "preparing")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, reopened.Status)
}

func TestUpdateStatus_InvalidLeavesOrderUnchanged(t *testing.T) {
	svc, repo := newTestService(burgerVerifier())
	order := mustPlace(t, svc, "user-1", 1, 10.00)

	_, err := svc.UpdateStatus(context.Background(), order.ID, "shipped")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, stored.Status)
	require.Equal(t, order.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	_, err := svc.UpdateStatus(context.Background(), "missing", "confirmed")
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.True(t, IsNotFound(err))
}

func TestUpdateQuantity_PersistsVerbatim(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	order := mustPlace(t, svc, "user-1", 1, 10.00)

	// The declared total is stored as-is; the catalog is not consulted again.
	updated, err := svc.UpdateQuantity(context.Background(), order.ID, 5, 42.00)
	require.NoError(t, err)
	require.Equal(t, 5, updated.Quantity)
	require.Equal(t, 42.00, updated.TotalPrice)
}

func TestUpdateQuantity_RejectsInvalidValues(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	order := mustPlace(t, svc, "user-1", 1, 10.00)

	_, err := svc.UpdateQuantity(context.Background(), order.ID, 0, 10.00)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateQuantity(context.Background(), order.ID, 2, -5.00)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBulkUpdateStatus_EmptyIDs(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	_, err := svc.BulkUpdateStatus(context.Background(), nil, "confirmed")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBulkUpdateStatus_PartialMatch(t *testing.T) {
	svc, repo := newTestService(burgerVerifier())
	first := mustPlace(t, svc, "user-1", 1, 10.00)
	second := mustPlace(t, svc, "user-2", 2, 20.00)

	updated, err := svc.BulkUpdateStatus(context.Background(),
		[]string{first.ID, second.ID, "missing"}, "confirmed")
	require.NoError(t, err)
	require.Equal(t, int64(2), updated, "unknown ids are skipped, not reported")

	for _, id := range []string{first.ID, second.ID} {
		stored, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, domain.StatusConfirmed, stored.Status)
	}
}

func TestBulkUpdateStatus_InvalidStatus(t *testing.T) {
	svc, repo := newTestService(burgerVerifier())
	order := mustPlace(t, svc, "user-1", 1, 10.00)

	_, err := svc.BulkUpdateStatus(context.Background(), []string{order.ID}, "bogus")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, stored.Status)
}

func TestStats_TotalsReconcileWithBreakdown(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	a := mustPlace(t, svc, "user-1", 1, 10.00)
	mustPlace(t, svc, "user-1", 2, 20.00)
	mustPlace(t, svc, "user-2", 3, 30.00)
	_, err := svc.UpdateStatus(context.Background(), a.ID, "delivered")
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalOrders)
	require.InDelta(t, 60.00, stats.TotalRevenue, 0.001)

	var count int64
	var value float64
	for _, bucket := range stats.Breakdown {
		count += bucket.Count
		value += bucket.TotalValue
	}
	require.Equal(t, stats.TotalOrders, count)
	require.InDelta(t, stats.TotalRevenue, value, 0.001)
}

func TestUserStats_ScopedToUser(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	mustPlace(t, svc, "user-1", 1, 10.00)
	mustPlace(t, svc, "user-1", 2, 20.00)
	mustPlace(t, svc, "user-2", 3, 30.00)

	stats, err := svc.UserStats(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", stats.UserID)
	require.Equal(t, int64(2), stats.TotalOrders)
	require.InDelta(t, 30.00, stats.TotalSpent, 0.001)
}

func TestDeleteOrder_ThenGet(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	order := mustPlace(t, svc, "user-1", 1, 10.00)

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))
	_, err := svc.GetOrder(context.Background(), order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, svc.DeleteOrder(context.Background(), order.ID), ports.ErrNotFound)
}

func TestListOrders_OutOfRangePage(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	mustPlace(t, svc, "user-1", 1, 10.00)

	page, err := svc.ListOrders(context.Background(), ports.ListOrdersInput{Page: 99, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, page.Orders)
	require.Equal(t, int64(1), page.TotalItems)
	require.Equal(t, int64(1), page.TotalPages)
}

func TestListOrders_UnknownSortFallsBackToDefault(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	mustPlace(t, svc, "user-1", 1, 10.00)
	mustPlace(t, svc, "user-2", 2, 20.00)

	page, err := svc.ListOrders(context.Background(), ports.ListOrdersInput{
		Page:   1,
		Limit:  10,
		SortBy: "password; DROP TABLE orders",
	})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
}

func TestListByStatus_InvalidStatus(t *testing.T) {
	svc, _ := newTestService(burgerVerifier())
	_, err := svc.ListByStatus(context.Background(), "bogus")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func mustPlace(t *testing.T, svc *Service, userID string, quantity int, total float64) *domain.Order {
	t.Helper()
	order, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID:     userID,
		MenuItemID: "item-1",
		Quantity:   quantity,
		TotalPrice: total,
	})
	require.NoError(t, err)
	return order
}
