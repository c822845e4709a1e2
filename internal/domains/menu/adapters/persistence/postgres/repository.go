package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
	"github.com/foodorder/go-gin-services/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the menu catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&itemRecord{})
	}
	return repo
}

// itemRecord maps the catalog item to a relational table.
type itemRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name      string    `gorm:"column:name;type:varchar(50);index"`
	Price     float64   `gorm:"column:price;index"`
	ImageURL  string    `gorm:"column:image_url"`
	Available bool      `gorm:"column:status;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "menu_items" }

func (r *Repository) Insert(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	record := toRecord(item)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) InsertMany(ctx context.Context, items []*domain.Item) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, toRecord(item))
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	saved := make([]*domain.Item, 0, len(records))
	for i := range records {
		saved = append(saved, records[i].toDomain())
	}
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, query ports.ListQuery) ([]*domain.Item, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&itemRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	direction := "ASC"
	if query.SortDesc {
		direction = "DESC"
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s %s", query.SortBy, direction)).
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return toDomainList(records), total, nil
}

func (r *Repository) FindAvailable(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("status = ?", true).
		Order("name ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) SearchByName(ctx context.Context, query string) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) FilterByPrice(ctx context.Context, priceRange ports.PriceRange) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("price >= ? AND price <= ?", priceRange.Min, priceRange.Max).
		Order("price ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	record := toRecord(item)
	result := r.db.WithContext(ctx).Model(&itemRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":       record.Name,
		"price":      record.Price,
		"image_url":  record.ImageURL,
		"status":     record.Available,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&itemRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) BulkSetAvailability(ctx context.Context, ids []string, available bool) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Model(&itemRecord{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": available, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres menu repository not configured")
	}
	return nil
}

func toRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		ImageURL:  item.ImageURL,
		Available: item.Available,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		ImageURL:  r.ImageURL,
		Available: r.Available,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toDomainList(records []itemRecord) []*domain.Item {
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items
}
