package search

import entity "chatshop.GO/model/entity/catalog"

// DefaultPageSize matches the number of product cards the chat surface renders.
const DefaultPageSize = 3

// Paginator serves a result list in fixed-size pages from an offset.
// The list is never mutated; consumed items are simply behind the offset.
type Paginator struct {
	results []entity.Product
	offset  int
	size    int
}

func NewPaginator(results []entity.Product, offset, size int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := &Paginator{results: results, size: size}
	p.offset = clamp(offset, 0, len(results))
	return p
}

// SetResults replaces the list and rewinds to the first page.
func (p *Paginator) SetResults(results []entity.Product) {
	p.results = results
	p.offset = 0
}

// CurrentPage returns up to size items starting at the offset.
func (p *Paginator) CurrentPage() []entity.Product {
	end := clamp(p.offset+p.size, 0, len(p.results))
	return p.results[p.offset:end]
}

// Advance moves past the current page. It never goes beyond the end.
func (p *Paginator) Advance() {
	p.offset = clamp(p.offset+p.size, 0, len(p.results))
}

// HasMore reports whether more than one page remains from the offset.
func (p *Paginator) HasMore() bool {
	return p.Remaining() > p.size
}

// Remaining counts items from the offset to the end.
func (p *Paginator) Remaining() int {
	return len(p.results) - p.offset
}

func (p *Paginator) Exhausted() bool {
	return p.Remaining() == 0
}

func (p *Paginator) Offset() int {
	return p.offset
}

func (p *Paginator) Len() int {
	return len(p.results)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
