package audit

import (
	"gorm.io/gorm"

	"github.com/alphacoop/gateway-settings-api/datastore"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &GormStore{db}
}

func (s *GormStore) InsertEntry(entry *Entry) error {
	return s.db.Create(entry).Error
}

func (s *GormStore) Entries(o datastore.ListOptions) ([]Entry, error) {
	ee := []Entry{}
	err := s.db.
		Order("created_at desc").
		Limit(o.Limit).
		Offset(o.Offset).
		Find(&ee).Error
	return ee, err
}
