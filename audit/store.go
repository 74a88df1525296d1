package audit

import (
	"github.com/alphacoop/gateway-settings-api/datastore"
)

// Store manages audit entry persistence.
type Store interface {
	InsertEntry(*Entry) error
	Entries(datastore.ListOptions) ([]Entry, error)
}
