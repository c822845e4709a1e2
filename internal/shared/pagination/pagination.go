// Package pagination parses page/limit/sort query parameters and renders the
// pagination envelope shared by the catalog and order listings.
package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params carries normalized listing parameters. SortBy is guaranteed to be a
// member of the allow-list it was parsed against, never raw client input.
type Params struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// Parse reads page, limit, sortBy and sortOrder from query values. Unknown or
// malformed values fall back to the provided defaults; sortBy is checked
// against the allow-list so client input never reaches the storage layer as a
// column name.
func Parse(values url.Values, defaultSort string, defaultDesc bool, allowedSorts []string) Params {
	p := Params{
		Page:     1,
		Limit:    DefaultLimit,
		SortBy:   defaultSort,
		SortDesc: defaultDesc,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit >= 1 {
		p.Limit = limit
		if p.Limit > MaxLimit {
			p.Limit = MaxLimit
		}
	}
	if sortBy := strings.TrimSpace(values.Get("sortBy")); sortBy != "" {
		for _, allowed := range allowedSorts {
			if sortBy == allowed {
				p.SortBy = sortBy
				break
			}
		}
	}
	switch strings.ToLower(values.Get("sortOrder")) {
	case "asc":
		p.SortDesc = false
	case "desc":
		p.SortDesc = true
	}
	return p
}

// Offset converts the 1-based page into a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// View is the JSON pagination envelope returned alongside listing data.
type View struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int64 `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

// NewView computes total_pages as ceil(total/limit). A page beyond the range
// is legal and simply pairs with an empty data slice.
func (p Params) NewView(totalItems int64) View {
	totalPages := totalItems / int64(p.Limit)
	if totalItems%int64(p.Limit) != 0 {
		totalPages++
	}
	return View{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: p.Limit,
	}
}
