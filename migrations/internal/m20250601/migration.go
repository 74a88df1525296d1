package m20250601

import (
	"time"

	"gorm.io/gorm"
)

const ID = "20250601"

// KeyValueEntry database model
type KeyValueEntry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;type:text"`
}

func (KeyValueEntry) TableName() string {
	return "keyvalue_entries"
}

// IdempotencyKey database model
type IdempotencyKey struct {
	Key        string    `gorm:"column:key;primaryKey"`
	ExpiryDate time.Time `gorm:"column:expiry_date"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&KeyValueEntry{}, &IdempotencyKey{})
}

func Rollback(tx *gorm.DB) error {
	if err := tx.Migrator().DropTable(&IdempotencyKey{}); err != nil {
		return err
	}

	return tx.Migrator().DropTable(&KeyValueEntry{})
}
