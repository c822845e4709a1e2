package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the order ledger in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed ledger. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	UserID     string    `gorm:"column:user_id;index;index:idx_orders_user_status"`
	MenuItemID string    `gorm:"column:menu_item_id;index"`
	Quantity   int       `gorm:"column:quantity"`
	TotalPrice float64   `gorm:"column:total_price"`
	Status     string    `gorm:"column:status;type:varchar(32);index;index:idx_orders_user_status"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// statusAggregate receives the group-by projection.
type statusAggregate struct {
	Status     string
	Count      int64
	TotalValue float64
}

// Insert writes a new order. The ledger has no secondary uniqueness
// constraints beyond the id.
func (r *Repository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns one page plus the total row count. SortBy arrives validated
// against the application allow-list; it is still interpolated through a
// fixed format, never concatenated with other client input.
func (r *Repository) List(ctx context.Context, query ports.ListQuery) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	direction := "ASC"
	if query.SortDesc {
		direction = "DESC"
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s %s", query.SortBy, direction)).
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return toDomainList(records), total, nil
}

// FindByUser returns a user's orders, newest first.
func (r *Repository) FindByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.findWhere(ctx, "user_id = ?", userID)
}

// FindByStatus returns orders in one status, newest first.
func (r *Repository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return r.findWhere(ctx, "status = ?", string(status))
}

// Update applies a partial mutation by id and returns the updated order.
func (r *Repository) Update(ctx context.Context, id string, update ports.FieldUpdate) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	changes := map[string]any{"updated_at": time.Now().UTC()}
	if update.Status != nil {
		changes["status"] = string(*update.Status)
	}
	if update.Quantity != nil {
		changes["quantity"] = *update.Quantity
	}
	if update.TotalPrice != nil {
		changes["total_price"] = *update.TotalPrice
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// BulkUpdateStatus applies one status to every matching id in a single
// set-based UPDATE. Ids without a row simply do not count toward the result.
func (r *Repository) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GroupByStatus aggregates count and summed total_price per status.
func (r *Repository) GroupByStatus(ctx context.Context, userID string) ([]ports.StatusBucket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS total_value")
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	var rows []statusAggregate
	if err := tx.Group("status").Order("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	buckets := make([]ports.StatusBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, ports.StatusBucket{
			Status:     domain.Status(row.Status),
			Count:      row.Count,
			TotalValue: row.TotalValue,
		})
	}
	return buckets, nil
}

func (r *Repository) findWhere(ctx context.Context, condition string, arg any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where(condition, arg).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:         order.ID,
		UserID:     order.UserID,
		MenuItemID: order.MenuItemID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:         r.ID,
		UserID:     r.UserID,
		MenuItemID: r.MenuItemID,
		Quantity:   r.Quantity,
		TotalPrice: r.TotalPrice,
		Status:     domain.Status(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toDomainList(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}
