// Package keyvalue defines the durable key-value store contract used for
// gateway settings persistence.
package keyvalue

import "errors"

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("keyvalue: key not found")

// Store is a string-keyed, string-valued durable store. Implementations are
// best-effort; callers decide whether a failed read or write is fatal.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value string) error
}
