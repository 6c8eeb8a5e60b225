package domain

import (
	"math"
	"strings"
)

// Paging defaults of list endpoints.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// MaxPage is the highest page number accepted; (MaxPage-1)*MaxPageLimit fits in an int.
const MaxPage = math.MaxInt / MaxPageLimit

// ListQuery holds the pagination, search and sort parameters of a list endpoint.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
}

// Normalize clamps the paging parameters: page < 1 becomes 1, page is capped at MaxPage,
// limit < 1 becomes DefaultPageLimit and limit is capped at MaxPageLimit.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset is the number of rows skipped before the page starts.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Descending resolves Order, falling back to def when it is neither asc nor desc.
func (q ListQuery) Descending(def bool) bool {
	switch strings.ToLower(q.Order) {
	case "asc":
		return false
	case "desc":
		return true
	}
	return def
}

// Page is one page of a list endpoint together with the pre-pagination total.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}
