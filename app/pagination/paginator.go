// Package pagination slices an ordered result set into fixed-size pages.
package pagination

import "strconv"

// DefaultPageSize is the number of posts shown per page.
const DefaultPageSize = 10

// Page describes one window of a paginated listing.
type Page struct {
	Number     int // 1-based page number after defaulting and clamping
	Size       int
	TotalItems int
	TotalPages int
}

// New computes the page window for a listing of totalItems items.
// requested is the raw page parameter: missing or non-numeric input
// defaults to page 1, and a number past the last page clamps to it.
func New(totalItems, size int, requested string) Page {
	if size < 1 {
		size = DefaultPageSize
	}

	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(requested)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Bounds returns the [start, end) indexes of this page within the listing.
func (p Page) Bounds() (int, int) {
	start := (p.Number - 1) * p.Size
	if start > p.TotalItems {
		start = p.TotalItems
	}
	end := start + p.Size
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Prev returns the previous page number, clamped to 1.
func (p Page) Prev() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// Next returns the next page number, clamped to the last page.
func (p Page) Next() int {
	if p.Number >= p.TotalPages {
		return p.TotalPages
	}
	return p.Number + 1
}
