// Package listing implements the admin list views: created_at ordering and
// fixed-size pages.
package listing

import (
	"strconv"
	"strings"
)

const PageSize = 10

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params are the list query parameters after defaults are applied.
type Params struct {
	Page int
	Sort string
}

// Parse reads ?page= and ?sort=.  A missing or non-positive page becomes 1
// and anything other than "asc" sorts newest first.
func Parse(page, sort string) Params {
	p := Params{Page: 1, Sort: SortDesc}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 0 {
		p.Page = n
	}
	if strings.EqualFold(strings.TrimSpace(sort), SortAsc) {
		p.Sort = SortAsc
	}
	return p
}

// TotalPages is max(1, ceil(total/PageSize)).
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// Clamp keeps page within [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Offset is the row offset of the first item on page.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// OrderBy returns the SQL direction keyword for p.Sort.
func (p Params) OrderBy() string {
	if p.Sort == SortAsc {
		return "ASC"
	}
	return "DESC"
}

// Resolve clamps p.Page against total rows and returns the adjusted params
// together with the page count.
func (p Params) Resolve(total int) (Params, int) {
	tp := TotalPages(total)
	p.Page = Clamp(p.Page, tp)
	return p, tp
}

// Page is the JSON envelope of a list response.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
	Sort       string `json:"sort"`
}

// NewPage builds the envelope; a nil items slice is rendered as [].
func NewPage[T any](items []T, p Params, total, totalPages int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: p.Page, TotalPages: totalPages, Total: total, Sort: p.Sort}
}
