// Package domain holds cross-cutting shapes shared by every entity
// package: pagination envelopes and the removal-state query parameters.
package domain

import "github.com/bondifuzz/api-gateway/internal/domain/removal"

const (
	minPageSize     = 10
	maxPageSize     = 200
	defaultPageSize = 100
)

// Page is a validated pagination request. pg_num defaults to 0, pg_size
// defaults to 100 and is clamped to [10, 200].
type Page struct {
	Num  int
	Size int
}

// NewPage builds a Page from raw query values, clamping pg_size into its
// valid range exactly as the HTTP surface contract requires.
func NewPage(num, size int) Page {
	if num < 0 {
		num = 0
	}

	if size == 0 {
		size = defaultPageSize
	}

	if size < minPageSize {
		size = minPageSize
	}

	if size > maxPageSize {
		size = maxPageSize
	}

	return Page{Num: num, Size: size}
}

// Offset is the number of records to skip for this page.
func (p Page) Offset() int { return p.Num * p.Size }

// Limit is the maximum number of records this page may return.
func (p Page) Limit() int { return p.Size }

// Listing is the response envelope for every paginated list endpoint.
type Listing[T any] struct {
	Items []T  `json:"items"`
	Page  int  `json:"page"`
	Limit int  `json:"limit"`
	Total int  `json:"total,omitempty"`
}

// NewListing wraps items with the pagination metadata the client requested.
func NewListing[T any](items []T, p Page) Listing[T] {
	if items == nil {
		items = []T{}
	}

	return Listing[T]{Items: items, Page: p.Num, Limit: p.Size}
}

// RemovalQuery carries the removal_state filter common to every list/count
// endpoint over a soft-deletable collection.
type RemovalQuery struct {
	View removal.View
}

// ParseRemovalView maps the `removal_state` query parameter
// (Present|TrashBin|All) onto a removal.View, defaulting to Visible (i.e.
// Present+TrashBin) to match the source's default listing behaviour.
func ParseRemovalView(raw string) removal.View {
	switch raw {
	case string(removal.ViewPresent):
		return removal.ViewPresent
	case string(removal.ViewTrashBin):
		return removal.ViewTrashBin
	case string(removal.ViewAll):
		return removal.ViewAll
	default:
		return removal.ViewVisible
	}
}
