package m20250723

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const ID = "20250723"

// Entry database model
type Entry struct {
	ID            uuid.UUID      `gorm:"column:id;primaryKey;type:uuid"`
	ChangedFields pq.StringArray `gorm:"column:changed_fields;type:text[]"`
	Before        datatypes.JSON `gorm:"column:before"`
	After         datatypes.JSON `gorm:"column:after"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
}

func (Entry) TableName() string {
	return "settings_audit_entries"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&Entry{})
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&Entry{})
}
