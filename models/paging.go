package models

import (
	"math"
	"strconv"
)

// Paging defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a validated page request
type Page struct {
	Page  int
	Limit int
}

// ParsePage converts query strings; empty values fall back to the defaults
func ParsePage(page string, limit string) (Page, error) {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return p, ErrInvalidPaging
		}
		p.Page = n
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > MaxLimit {
			return p, ErrInvalidPaging
		}
		p.Limit = n
	}

	// skip must fit into int64
	if int64(p.Page-1) > math.MaxInt64/int64(p.Limit) {
		return Page{Page: DefaultPage, Limit: DefaultLimit}, ErrInvalidPaging
	}

	return p, nil
}

// Skip is the number of records before the page
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPages = ceil(total/limit)
func (p Page) TotalPages(total int64) int64 {
	if p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
