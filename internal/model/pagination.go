package model

// Pagination limits applied to every community-scoped listing or search.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Paginated wraps a page of results with totals.
// Total always counts matching entities before slicing; Pages = ceil(Total/Limit).
type Paginated[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPaginated builds a Paginated view over an already-sliced page.
func NewPaginated[T any](data []T, total, page, limit int) *Paginated[T] {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Paginated[T]{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

// NormalizePage clamps page and limit into their allowed ranges:
// page >= 1, 1 <= limit <= MaxPageLimit. A non-positive limit falls back
// to DefaultPageLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
