package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&menuItemRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	UserID     string    `gorm:"column:user_id;type:varchar(64);index;index:idx_orders_user_status"`
	MenuItemID string    `gorm:"column:menu_item_id;type:varchar(64);index"`
	Quantity   int       `gorm:"column:quantity"`
	TotalPrice float64   `gorm:"column:total_price"`
	Status     string    `gorm:"column:status;type:varchar(32);index;index:idx_orders_user_status"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Menu item schema mirrors the menu Postgres adapter.
type menuItemRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name      string    `gorm:"column:name;type:varchar(50);index"`
	Price     float64   `gorm:"column:price;index"`
	ImageURL  string    `gorm:"column:image_url"`
	Available bool      `gorm:"column:status;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (menuItemRecord) TableName() string { return "menu_items" }
