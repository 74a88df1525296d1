package gorm

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	upstreamgorm "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alphacoop/gateway-settings-api/keyvalue"
)

func testDB(t *testing.T) *upstreamgorm.DB {
	dsn := filepath.Join(t.TempDir(), "test.db")

	db, err := upstreamgorm.Open(sqlite.Open(dsn), &upstreamgorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func TestStore(t *testing.T) {
	store := NewStore(testDB(t))

	if _, err := store.Get("missing"); !errors.Is(err, keyvalue.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing key, got %v", err)
	}

	if err := store.Set("gateway_settings", `{"receiverName":"Foo Coop"}`); err != nil {
		t.Fatal(err)
	}

	v, err := store.Get("gateway_settings")
	if err != nil {
		t.Fatal(err)
	}
	if v != `{"receiverName":"Foo Coop"}` {
		t.Errorf("unexpected stored value: %s", v)
	}
}

func TestStoreUpsert(t *testing.T) {
	store := NewStore(testDB(t))

	if err := store.Set("key", "first"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("key", "second"); err != nil {
		t.Fatal(err)
	}

	v, err := store.Get("key")
	if err != nil {
		t.Fatal(err)
	}
	if v != "second" {
		t.Errorf(`expected upserted value "second", got "%s"`, v)
	}
}
