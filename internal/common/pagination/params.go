package pagination

import (
	"net/url"
	"strconv"
)

// Params represents the pagination part of a list request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ForPage returns Params for page with the fixed recipe list limit.
func ForPage(page int) Params {
	return Params{Page: page, Limit: RecipeListLimit}
}

// Encode writes page and limit into q. Zero values are omitted so the
// server falls back to its own defaults.
func (p Params) Encode(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}
