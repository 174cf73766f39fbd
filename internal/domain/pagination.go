package domain

// PaginationParams holds offset-based pagination parameters for list queries.
// From is the number of rows to skip, Size the maximum number of rows returned.
type PaginationParams struct {
	From int
	Size int
}

// Offset returns the row offset, never negative.
func (p PaginationParams) Offset() int {
	if p.From < 0 {
		return 0
	}
	return p.From
}

// Limit returns the page size; zero or negative means unbounded.
func (p PaginationParams) Limit() int {
	if p.Size < 0 {
		return 0
	}
	return p.Size
}

// Unpaged reports whether the params carry no row limit.
func (p PaginationParams) Unpaged() bool {
	return p.Limit() == 0
}

// Slice applies the params to an in-memory result set.
func Slice[T any](items []T, p PaginationParams) []T {
	off := p.Offset()
	if off >= len(items) {
		return []T{}
	}
	items = items[off:]
	if !p.Unpaged() && p.Limit() < len(items) {
		items = items[:p.Limit()]
	}
	return items
}
