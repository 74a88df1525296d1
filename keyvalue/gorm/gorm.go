// Package gorm provides a keyvalue.Store backed by the main application
// database (sqlite, mysql or postgresql).
package gorm

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alphacoop/gateway-settings-api/keyvalue"
)

type Entry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;type:text"`
}

func (Entry) TableName() string {
	return "keyvalue_entries"
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(key string) (string, error) {
	entry := Entry{}
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", keyvalue.ErrNotFound
	} else if err != nil {
		return "", err
	}

	return entry.Value, nil
}

func (s *Store) Set(key, value string) error {
	// update value if the key exists or create a new entry
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
}
