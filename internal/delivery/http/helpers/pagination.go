package helpers

import (
	"net/http"
	"strconv"
)

// Pagination query parameter defaults and limits. from is a zero-based
// offset, size a page size.
const (
	DefaultFrom = 0
	DefaultSize = 10
	MaxSize     = 100
)

// ParsePagination reads from and size from the request query string, clamps
// them to valid ranges, and returns them. Invalid or missing values fall
// back to defaults; size is always > 0.
func ParsePagination(r *http.Request) (from, size int) {
	from = DefaultFrom
	if s := r.URL.Query().Get("from"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			from = v
		}
	}
	size = DefaultSize
	if s := r.URL.Query().Get("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			size = v
			if size > MaxSize {
				size = MaxSize
			}
		}
	}
	return from, size
}

// ParseID parses a path value as a positive int64 id.
func ParseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
