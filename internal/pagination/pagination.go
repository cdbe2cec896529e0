// Package pagination implements the cursor-page primitive shared by every
// paginated listing. Repositories fetch limit+1 rows strictly after the cursor
// row in a total order (created_at DESC, id DESC); NewPage trims the over-fetch
// and derives the next cursor from the last kept row.
package pagination

const (
	// DefaultLimit is the page size used when the caller does not supply one.
	DefaultLimit = 9
	// MaxLimit caps caller-supplied page sizes.
	MaxLimit = 100
)

// ClampLimit normalizes a caller-supplied limit into [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Meta carries the cursor metadata returned alongside a page.
// NextCursor is nil when there is no further page.
type Meta struct {
	NextCursor  *uint `json:"next_cursor"`
	HasNextPage bool  `json:"has_next_page"`
}

// Page is one page of results plus its cursor metadata.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Pagination Meta `json:"pagination"`
}

// NewPage builds a page from rows fetched with the limit+1 over-fetch.
// cursorOf extracts the cursor identifier of a row: the row's own primary key
// for feed pages, the Save row's ID for saved-post pages.
func NewPage[T any](rows []T, limit int, cursorOf func(T) uint) Page[T] {
	page := Page[T]{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		page.Pagination.HasNextPage = true
		last := cursorOf(page.Items[len(page.Items)-1])
		page.Pagination.NextCursor = &last
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page
}
