// Package datastore holds listing options shared by the SQL-backed stores.
package datastore

type ListOptions struct {
	Limit  int
	Offset int
}

const DefaultLimit = 100

// ParseListOptions sanitizes raw limit and offset values. A zero limit means
// the default, a negative limit means no limit.
func ParseListOptions(limit, offset int) ListOptions {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		limit = -1
		offset = 0
	}
	if offset < 0 {
		offset = 0
	}
	return ListOptions{Limit: limit, Offset: offset}
}
