// Package audit records who-changed-what history for the gateway settings,
// shown on the administrative dashboard.
package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

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

// Convert to JSON version
func (e Entry) ToJSON() EntryJSON {
	return EntryJSON{
		ID:            e.ID.String(),
		ChangedFields: e.ChangedFields,
		Before:        e.Before,
		After:         e.After,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

type EntryJSON struct {
	ID            string         `json:"id"`
	ChangedFields []string       `json:"changedFields"`
	Before        datatypes.JSON `json:"before"`
	After         datatypes.JSON `json:"after"`
	CreatedAt     string         `json:"createdAt"`
}
