//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
	"github.com/foodorder/go-gin-services/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("foodorder_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func mustOrder(t *testing.T, userID string, quantity int, total float64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(userID, "item-1", quantity, total)
	require.NoError(t, err)
	return order
}

func TestRepository_InsertAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := mustOrder(t, "user-1", 2, 20.00)
	saved, err := repo.Insert(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.Status)

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.UserID, fetched.UserID)
	assert.Equal(t, order.TotalPrice, fetched.TotalPrice)
}

func TestRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := mustOrder(t, "user-1", 2, 20.00)
	_, err := repo.Insert(ctx, order)
	require.NoError(t, err)

	status := domain.StatusDelivered
	updated, err := repo.Update(ctx, order.ID, ports.FieldUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)

	_, err = repo.Update(ctx, "missing", ports.FieldUpdate{Status: &status})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_BulkUpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first := mustOrder(t, "user-1", 1, 10.00)
	second := mustOrder(t, "user-2", 2, 20.00)
	for _, order := range []*domain.Order{first, second} {
		_, err := repo.Insert(ctx, order)
		require.NoError(t, err)
	}

	updated, err := repo.BulkUpdateStatus(ctx,
		[]string{first.ID, second.ID, "missing"}, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	fetched, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, fetched.Status)
}

func TestRepository_GroupByStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	a := mustOrder(t, "user-1", 1, 10.00)
	b := mustOrder(t, "user-1", 2, 20.00)
	c := mustOrder(t, "user-2", 3, 30.00)
	for _, order := range []*domain.Order{a, b, c} {
		_, err := repo.Insert(ctx, order)
		require.NoError(t, err)
	}
	status := domain.StatusDelivered
	_, err := repo.Update(ctx, c.ID, ports.FieldUpdate{Status: &status})
	require.NoError(t, err)

	buckets, err := repo.GroupByStatus(ctx, "")
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	byStatus := map[domain.Status]ports.StatusBucket{}
	for _, bucket := range buckets {
		byStatus[bucket.Status] = bucket
	}
	assert.Equal(t, int64(2), byStatus[domain.StatusPending].Count)
	assert.InDelta(t, 30.00, byStatus[domain.StatusPending].TotalValue, 0.001)
	assert.Equal(t, int64(1), byStatus[domain.StatusDelivered].Count)

	userBuckets, err := repo.GroupByStatus(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, userBuckets, 1)
	assert.Equal(t, int64(2), userBuckets[0].Count)
}

func TestRepository_ListPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	totals := []float64{10.00, 20.00, 30.00}
	for i, total := range totals {
		_, err := repo.Insert(ctx, mustOrder(t, "user-1", i+1, total))
		require.NoError(t, err)
	}

	orders, total, err := repo.List(ctx, ports.ListQuery{
		Offset:   0,
		Limit:    2,
		SortBy:   "total_price",
		SortDesc: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, 30.00, orders[0].TotalPrice)
	assert.Equal(t, 20.00, orders[1].TotalPrice)
}

func TestRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := mustOrder(t, "user-1", 1, 10.00)
	_, err := repo.Insert(ctx, order)
	require.NoError(t, err)

	err = repo.Delete(ctx, order.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, order.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
