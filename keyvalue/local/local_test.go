package local

import (
	"errors"
	"testing"

	"github.com/alphacoop/gateway-settings-api/keyvalue"
)

func TestStore(t *testing.T) {
	store := NewStore()

	if _, err := store.Get("missing"); !errors.Is(err, keyvalue.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing key, got %v", err)
	}

	if err := store.Set("key", "first"); err != nil {
		t.Fatal(err)
	}

	v, err := store.Get("key")
	if err != nil {
		t.Fatal(err)
	}
	if v != "first" {
		t.Errorf(`expected "first", got "%s"`, v)
	}

	if err := store.Set("key", "second"); err != nil {
		t.Fatal(err)
	}

	if v, _ := store.Get("key"); v != "second" {
		t.Errorf(`expected overwritten value "second", got "%s"`, v)
	}
}
