// Package local provides an in-memory keyvalue.Store, mainly for testing
// and single-node development use.
package local

import (
	"sync"

	"github.com/alphacoop/gateway-settings-api/keyvalue"
)

type Store struct {
	mutex  sync.RWMutex
	values map[string]string
}

func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", keyvalue.ErrNotFound
	}

	return v, nil
}

func (s *Store) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value

	return nil
}
