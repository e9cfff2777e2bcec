package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage persists cart slots in PostgreSQL using GORM.
type Storage struct {
	db *gorm.DB
}

// NewStorage wires a PostgreSQL-backed slot store. Caller manages DB lifecycle
// and applies migrations.
func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// slotRecord maps one key/value slot to a row.
type slotRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:255"`
	Value     string    `gorm:"column:value;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (slotRecord) TableName() string { return "cart_slots" }

// Get loads the slot text.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.ensureDB(); err != nil {
		return "", false, err
	}
	var record slotRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Value, true, nil
}

// Set upserts the slot, overwriting any previous text.
func (s *Storage) Set(ctx context.Context, key, text string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := slotRecord{Key: key, Value: text}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"value":      record.Value,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

func (s *Storage) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres cart storage not configured")
	}
	return nil
}
