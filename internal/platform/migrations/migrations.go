package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the cart storage adapters.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&cartSlotRecord{})
}

// Cart slot schema mirrors the cart Postgres storage adapter.
type cartSlotRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:255"`
	Value     string    `gorm:"column:value;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (cartSlotRecord) TableName() string { return "cart_slots" }
