package utils

import (
	"strconv"
)

// PageSize is the fixed page size of every paginated listing
const PageSize = 10

// PaginationParams holds pagination request parameters.
// A zero Page means the caller asked for the full, unpaginated list.
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ParsePage reads the raw "page" query value. An empty or unparsable value
// selects unpaginated mode; values below 1 are clamped to 1.
func ParsePage(raw string) PaginationParams {
	if raw == "" {
		return PaginationParams{}
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return PaginationParams{}
	}
	return GetPaginationParams(page, PageSize)
}

// GetPaginationParams extracts page and limit with defaults
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// Paginated reports whether a page window should be applied
func (p PaginationParams) Paginated() bool {
	return p.Page > 0 && p.Limit > 0
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
