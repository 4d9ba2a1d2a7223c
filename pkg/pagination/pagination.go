package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Request validation errors.
var (
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrInvalidPageSize = errors.New("page_size out of range")
)

// PageRequest identifies one page of a result set.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// WithDefaults returns r with a zero PageSize replaced by the configured default.
func (r PageRequest) WithDefaults(cfg Config) PageRequest {
	if r.PageSize == 0 {
		r.PageSize = cfg.DefaultPageSize
	}
	return r
}

// Validate rejects pages below 1 and page sizes outside the configured range.
// Values are never clamped.
func (r PageRequest) Validate(cfg Config) error {
	if r.Page < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, r.Page)
	}
	if r.PageSize < cfg.MinPageSize || r.PageSize > cfg.MaxPageSize {
		return fmt.Errorf("%w: got %d, want %d..%d", ErrInvalidPageSize, r.PageSize, cfg.MinPageSize, cfg.MaxPageSize)
	}
	return nil
}

// Offset calculates the number of records to skip based on page and page size.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery parses page and page_size from URL query values.
// A missing page is 1 and a missing page_size is left zero for WithDefaults.
func PageRequestFromQuery(values url.Values) (PageRequest, error) {
	req := PageRequest{Page: 1}

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: %q", ErrInvalidPage, v)
		}
		req.Page = n
	}

	if v := values.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: %q", ErrInvalidPageSize, v)
		}
		req.PageSize = n
	}

	return req, nil
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
// An empty result set has zero pages.
func NewPageResult[T any](items []T, total, page, pageSize int) PageResult[T] {
	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
