package datastore

import "testing"

func TestParseListOptions(t *testing.T) {
	var tests = []struct {
		name          string
		limit, offset int
		expected      ListOptions
	}{
		{"defaults", 0, 0, ListOptions{Limit: DefaultLimit, Offset: 0}},
		{"explicit", 10, 20, ListOptions{Limit: 10, Offset: 20}},
		{"negative limit means no limit", -5, 20, ListOptions{Limit: -1, Offset: 0}},
		{"negative offset", 10, -1, ListOptions{Limit: 10, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseListOptions(tt.limit, tt.offset); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
