package audit

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/alphacoop/gateway-settings-api/datastore"
	"github.com/alphacoop/gateway-settings-api/settings"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store}
}

// RecordChange implements settings.Auditor. The entry timestamp is the new
// record's UpdatedAt so audit history lines up with the record itself.
func (svc *Service) RecordChange(before, after settings.Settings) error {
	changed := pq.StringArray{}
	if before.QRCodeURL != after.QRCodeURL {
		changed = append(changed, "qrCodeUrl")
	}
	if before.ReceiverName != after.ReceiverName {
		changed = append(changed, "receiverName")
	}
	if before.ReceiverNumber != after.ReceiverNumber {
		changed = append(changed, "receiverNumber")
	}

	beforeJSON, err := json.Marshal(before.ToJSON())
	if err != nil {
		return err
	}
	afterJSON, err := json.Marshal(after.ToJSON())
	if err != nil {
		return err
	}

	entry := &Entry{
		ID:            uuid.New(),
		ChangedFields: changed,
		Before:        beforeJSON,
		After:         afterJSON,
		CreatedAt:     after.UpdatedAt,
	}

	log.WithFields(log.Fields{"entryId": entry.ID, "changed": changed}).Trace("Record settings change")

	return svc.store.InsertEntry(entry)
}

// List returns audit entries, newest first.
func (svc *Service) List(limit, offset int) ([]Entry, error) {
	o := datastore.ParseListOptions(limit, offset)
	return svc.store.Entries(o)
}
