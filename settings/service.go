package settings

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/alphacoop/gateway-settings-api/keyvalue"
)

// Auditor records settings changes. Recording failures are non-fatal.
type Auditor interface {
	RecordChange(before, after Settings) error
}

type registration struct {
	id       uint64
	observer func()
}

// Service owns the in-memory gateway settings record and its registered
// observers. The durable key-value store is best-effort persistence only;
// the in-memory record is the source of truth.
type Service struct {
	store             keyvalue.Store
	key               string
	now               func() time.Time
	updateRatelimiter ratelimit.Limiter
	auditor           Auditor

	mutex         sync.Mutex
	record        Settings
	registrations []registration
	nextID        uint64
}

// NewService constructs the settings service and loads the persisted record
// once. Loading is not repeated afterwards; a foreign write to the durable
// store is not observed until the process restarts.
func NewService(store keyvalue.Store, opts ...ServiceOption) *Service {
	svc := &Service{
		store: store,
		key:   StorageKey,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	svc.record = Defaults()
	svc.record.UpdatedAt = svc.now()

	svc.load()

	return svc
}

// GetSettings returns a copy of the current record. It never fails; callers
// always observe some fully valid record.
func (svc *Service) GetSettings() Settings {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	return svc.record
}

// UpdateSettings replaces the record with the given fields and UpdatedAt set
// to the current time, persists it best-effort and notifies all registered
// observers synchronously in registration order. A failed durable write is
// logged but not rolled back, not retried and not surfaced to the caller.
func (svc *Service) UpdateSettings(qrCodeURL, receiverName, receiverNumber string) Settings {
	if svc.updateRatelimiter != nil {
		svc.updateRatelimiter.Take()
	}

	svc.mutex.Lock()

	previous := svc.record
	record := Settings{
		QRCodeURL:      qrCodeURL,
		ReceiverName:   receiverName,
		ReceiverNumber: receiverNumber,
		UpdatedAt:      svc.now(),
	}
	svc.record = record

	observers := make([]func(), len(svc.registrations))
	for i, r := range svc.registrations {
		observers[i] = r.observer
	}

	svc.mutex.Unlock()

	if raw, err := json.Marshal(record.ToJSON()); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Failed to serialize gateway settings")
	} else if err := svc.store.Set(svc.key, string(raw)); err != nil {
		log.
			WithFields(log.Fields{"key": svc.key, "error": err}).
			Warn("Failed to persist gateway settings")
	}

	if svc.auditor != nil {
		if err := svc.auditor.RecordChange(previous, record); err != nil {
			log.WithFields(log.Fields{"error": err}).Warn("Failed to record settings change")
		}
	}

	// Observers run outside the lock so one may call UpdateSettings again
	// from its callback; the nested notifications complete first.
	for _, observer := range observers {
		observer()
	}

	return record
}

// Subscribe registers an observer which is invoked with no arguments after
// every update. The same function may be registered more than once; each
// registration is independent. The returned function removes exactly this
// registration and is a no-op when called again.
func (svc *Service) Subscribe(observer func()) (unsubscribe func()) {
	svc.mutex.Lock()
	svc.nextID++
	id := svc.nextID
	svc.registrations = append(svc.registrations, registration{id: id, observer: observer})
	svc.mutex.Unlock()

	return func() {
		svc.mutex.Lock()
		defer svc.mutex.Unlock()

		for i, r := range svc.registrations {
			if r.id == id {
				svc.registrations = append(svc.registrations[:i], svc.registrations[i+1:]...)
				return
			}
		}
	}
}

// load reads the persisted record. Present fields overwrite the defaults one
// by one; an empty persisted field is indistinguishable from a missing one
// and keeps the default. Absent, malformed or unreadable values leave the
// record untouched.
func (svc *Service) load() {
	raw, err := svc.store.Get(svc.key)
	if errors.Is(err, keyvalue.ErrNotFound) {
		log.WithFields(log.Fields{"key": svc.key}).Debug("No persisted gateway settings")
		return
	} else if err != nil {
		log.
			WithFields(log.Fields{"key": svc.key, "error": err}).
			Warn("Failed to read persisted gateway settings")
		return
	}

	var j SettingsJSON
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		log.
			WithFields(log.Fields{"key": svc.key, "error": err}).
			Warn("Failed to parse persisted gateway settings")
		return
	}

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if j.QRCodeURL != "" {
		svc.record.QRCodeURL = j.QRCodeURL
	}
	if j.ReceiverName != "" {
		svc.record.ReceiverName = j.ReceiverName
	}
	if j.ReceiverNumber != "" {
		svc.record.ReceiverNumber = j.ReceiverNumber
	}
	if t, err := time.Parse(time.RFC3339, j.UpdatedAt); err == nil {
		svc.record.UpdatedAt = t
	}
}
