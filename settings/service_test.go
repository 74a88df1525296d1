package settings

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/alphacoop/gateway-settings-api/keyvalue/local"
)

// brokenStore fails every operation, simulating an unavailable durable store.
type brokenStore struct{}

func (s *brokenStore) Get(key string) (string, error) {
	return "", fmt.Errorf("storage unavailable")
}

func (s *brokenStore) Set(key, value string) error {
	return fmt.Errorf("storage quota exceeded")
}

func TestDefaults(t *testing.T) {
	svc := NewService(local.NewStore())

	got := svc.GetSettings()

	if got.QRCodeURL != "" {
		t.Errorf(`expected default qr code url to be empty, got "%s"`, got.QRCodeURL)
	}
	if got.ReceiverName != "Alpha Banking Cooperative" {
		t.Errorf(`expected default receiver name, got "%s"`, got.ReceiverName)
	}
	if got.ReceiverNumber != "+63 917 XXX XXXX" {
		t.Errorf(`expected default receiver number, got "%s"`, got.ReceiverNumber)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be stamped at construction")
	}
}

func TestUpdateReadRoundTrip(t *testing.T) {
	svc := NewService(local.NewStore())

	before := time.Now()
	svc.UpdateSettings("https://x/qr.png", "Foo Coop", "+1 555 0100")

	got := svc.GetSettings()

	want := Settings{
		QRCodeURL:      "https://x/qr.png",
		ReceiverName:   "Foo Coop",
		ReceiverNumber: "+1 555 0100",
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Settings{}, "UpdatedAt")); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	if got.UpdatedAt.Before(before) {
		t.Errorf("expected UpdatedAt %v not to be before %v", got.UpdatedAt, before)
	}
}

func TestUpdatedAtAdvances(t *testing.T) {
	clock := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(local.NewStore(), WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))

	first := svc.UpdateSettings("", "Foo Coop", "+1 555 0100")
	second := svc.UpdateSettings("", "Foo Coop", "+1 555 0101")

	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("expected UpdatedAt to advance, got %v then %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := local.NewStore()

	svc := NewService(store)
	svc.UpdateSettings("https://x/qr.png", "Foo Coop", "+1 555 0100")
	want := svc.GetSettings()

	// Simulated process restart: a fresh service over the same store
	restarted := NewService(store)
	got := restarted.GetSettings()

	// The persisted form carries second precision only
	if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("settings mismatch after restart (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyFieldsFallBackToDefaults(t *testing.T) {
	store := local.NewStore()
	if err := store.Set(StorageKey, `{"qrCodeUrl":"","receiverName":"","receiverNumber":"+1 555 0100","updatedAt":"2025-08-01T12:00:00Z"}`); err != nil {
		t.Fatal(err)
	}

	svc := NewService(store)
	got := svc.GetSettings()

	if got.ReceiverName != DefaultReceiverName {
		t.Errorf(`expected empty persisted receiver name to fall back to default, got "%s"`, got.ReceiverName)
	}
	if got.ReceiverNumber != "+1 555 0100" {
		t.Errorf(`expected persisted receiver number, got "%s"`, got.ReceiverNumber)
	}
	if got.QRCodeURL != DefaultQRCodeURL {
		t.Errorf(`expected empty persisted qr code url to fall back to default, got "%s"`, got.QRCodeURL)
	}
}

func TestLoadMalformedRecord(t *testing.T) {
	store := local.NewStore()
	if err := store.Set(StorageKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	svc := NewService(store)
	got := svc.GetSettings()

	if got.ReceiverName != DefaultReceiverName {
		t.Errorf(`expected defaults after malformed record, got "%s"`, got.ReceiverName)
	}
}

func TestStoreUnavailable(t *testing.T) {
	svc := NewService(&brokenStore{})

	if got := svc.GetSettings(); got.ReceiverName != DefaultReceiverName {
		t.Errorf(`expected defaults when store is unavailable, got "%s"`, got.ReceiverName)
	}

	// A failed durable write is not rolled back and observers still fire
	notified := 0
	svc.Subscribe(func() { notified++ })

	svc.UpdateSettings("https://x/qr.png", "Foo Coop", "+1 555 0100")

	if got := svc.GetSettings(); got.ReceiverName != "Foo Coop" {
		t.Errorf(`expected in-memory update to survive a failed write, got "%s"`, got.ReceiverName)
	}
	if notified != 1 {
		t.Errorf("expected 1 notification, got %d", notified)
	}
}

func TestObserverOrdering(t *testing.T) {
	svc := NewService(local.NewStore())

	calls := []string{}
	svc.Subscribe(func() { calls = append(calls, "A") })
	svc.Subscribe(func() { calls = append(calls, "B") })

	svc.UpdateSettings("", "Foo Coop", "+1 555 0100")

	if diff := cmp.Diff([]string{"A", "B"}, calls); diff != "" {
		t.Errorf("notification order mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	svc := NewService(local.NewStore())

	calls := 0
	observer := func() { calls++ }

	unsubscribeFirst := svc.Subscribe(observer)
	svc.Subscribe(observer)

	svc.UpdateSettings("", "Foo Coop", "+1 555 0100")
	if calls != 2 {
		t.Errorf("expected both registrations to fire, got %d calls", calls)
	}

	// Removing one registration leaves the other intact
	unsubscribeFirst()

	svc.UpdateSettings("", "Foo Coop", "+1 555 0101")
	if calls != 3 {
		t.Errorf("expected one remaining registration to fire, got %d calls total", calls)
	}
}

func TestUnsubscribeIdempotence(t *testing.T) {
	svc := NewService(local.NewStore())

	aCalls, bCalls := 0, 0
	unsubscribeA := svc.Subscribe(func() { aCalls++ })
	svc.Subscribe(func() { bCalls++ })

	unsubscribeA()
	unsubscribeA() // no-op

	svc.UpdateSettings("", "Foo Coop", "+1 555 0100")

	if aCalls != 0 {
		t.Errorf("expected unsubscribed observer not to fire, got %d calls", aCalls)
	}
	if bCalls != 1 {
		t.Errorf("expected remaining observer to fire once, got %d calls", bCalls)
	}
}

func TestDefensiveCopy(t *testing.T) {
	svc := NewService(local.NewStore())

	got := svc.GetSettings()
	got.ReceiverName = "mutated"

	if svc.GetSettings().ReceiverName == "mutated" {
		t.Error("expected mutation of a returned record not to affect the service")
	}
}

func TestReentrantUpdate(t *testing.T) {
	svc := NewService(local.NewStore())

	nested := false
	svc.Subscribe(func() {
		if !nested {
			nested = true
			svc.UpdateSettings("", "Nested Coop", "+1 555 0199")
		}
	})

	svc.UpdateSettings("", "Foo Coop", "+1 555 0100")

	// The nested update completes inside the outer notification
	if got := svc.GetSettings(); got.ReceiverName != "Nested Coop" {
		t.Errorf(`expected nested update to win, got "%s"`, got.ReceiverName)
	}
}

func TestWithStorageKey(t *testing.T) {
	store := local.NewStore()

	svc := NewService(store, WithStorageKey("settings_staging"))
	svc.UpdateSettings("https://x/qr.png", "Foo Coop", "+1 555 0100")

	if _, err := store.Get("settings_staging"); err != nil {
		t.Errorf("expected record under the configured key, got %v", err)
	}
	if _, err := store.Get(StorageKey); err == nil {
		t.Error("expected nothing under the default key")
	}
}
