package util

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Calculate turns a 1-based page and a page size into offset and limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if maxPage := math.MaxInt/size + 1; page > maxPage {
		page = maxPage
	}
	from = (page - 1) * size
	return from, size
}
