package listing

import (
	"net/http"
	"strconv"
	"strings"
)

// PageSize is the fixed server-side page size for paginated collections.
const PageSize = 10

// Params carries the pagination and keyword-filter query of a list
// request. Page is 1-indexed. Keyword is matched case-insensitively as a
// substring against a fixed per-entity column set in the db layer.
type Params struct {
	Page    int
	Keyword string
}

// FromRequest parses pageNumber and keyword query params. A missing or
// malformed page falls back to 1.
func FromRequest(r *http.Request) Params {
	p := Params{Page: 1}
	if raw := r.URL.Query().Get("pageNumber"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Page = n
		}
	}
	p.Keyword = strings.TrimSpace(r.URL.Query().Get("keyword"))
	return p
}

// Offset is the row offset for the page.
func (p Params) Offset() int {
	return (p.Page - 1) * PageSize
}

// PageCount returns the number of pages needed for total items, at least 1
// so the dashboard's pager always has a page to stand on.
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}
