package database

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidPageRequest = errors.New("invalid page request")

// PageRequest describes one 1-based page of an ordered result set.
type PageRequest struct {
	Page int // 1-based, as seen by API clients
	Size int
	Sort SortField
}

// NewPageRequest validates the caller supplied page number and size.
func NewPageRequest(page, size int, sort SortField) (PageRequest, error) {
	if page < 1 {
		return PageRequest{}, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidPageRequest, page)
	}
	if size < 1 {
		return PageRequest{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidPageRequest, size)
	}
	if page-1 > math.MaxInt/size {
		return PageRequest{}, fmt.Errorf("%w: page %d is out of range for quantity %d", ErrInvalidPageRequest, page, size)
	}
	if !IsValidSortField(string(sort)) {
		return PageRequest{}, fmt.Errorf("%w: unknown sort field '%s'", ErrInvalidPageRequest, sort)
	}
	return PageRequest{Page: page, Size: size, Sort: sort}, nil
}

// Index is the 0-based page index.
func (p PageRequest) Index() int {
	return p.Page - 1
}

// Offset is the number of rows skipped before this page starts.
func (p PageRequest) Offset() int {
	return p.Index() * p.Size
}

// Page is a bounded slice of an ordered result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a page from its rows and the total row count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

func (p Page[T]) Empty() bool {
	return len(p.Content) == 0
}

// MapPage converts the content of a page, keeping its position data.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, item := range p.Content {
		out[i] = fn(item)
	}
	return Page[U]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
