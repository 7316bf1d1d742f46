package pagination

import (
	"net/http"
	"strconv"
)

// Default pagination values for the orders listing page
const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

// Params represents pagination query parameters
type Params struct {
	Page  int // Current page number (1-based)
	Limit int // Number of items per page
}

// Meta carries pagination state for page rendering
type Meta struct {
	CurrentPage  int
	PerPage      int
	TotalPages   int
	TotalRecords int
	HasNext      bool
	HasPrevious  bool
	NextPage     int
	PreviousPage int
}

// ParseParams extracts and validates pagination parameters from the request
func ParseParams(r *http.Request) Params {
	page := DefaultPage
	limit := DefaultLimit

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
			if limit > MaxLimit {
				limit = MaxLimit
			}
		}
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the SQL OFFSET value based on page and limit
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta computes pagination metadata for the given total record count
func (p Params) Meta(totalRecords int) Meta {
	totalPages := (totalRecords + p.Limit - 1) / p.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		CurrentPage:  p.Page,
		PerPage:      p.Limit,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		HasNext:      p.Page < totalPages,
		HasPrevious:  p.Page > 1,
		NextPage:     p.Page + 1,
		PreviousPage: p.Page - 1,
	}
}
