package domain

import "github.com/lib/pq"

// Tags is stored as a postgres text[] column.
type Tags = pq.StringArray

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ContentFilter is the intersection of optional list predicates.
// Nil pointer / empty string means "no constraint".
type ContentFilter struct {
	Category  string
	Tag       string
	Published *bool
	Featured  *bool // projects only
}

// Pagination describes one page of a filtered listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(total, page, limit int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}

// ClampPage normalizes a requested page number to >= 1.
func ClampPage(page int) int {
	return max(1, page)
}

// ClampLimit normalizes a requested page size to [1, MaxPageSize],
// substituting the default when the caller passed nothing.
func ClampLimit(limit int) int {
	if limit == 0 {
		return DefaultPageSize
	}
	return min(max(1, limit), MaxPageSize)
}
