package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	entity "chatshop.GO/model/entity/catalog"
)

func numbered(n int) []entity.Product {
	out := make([]entity.Product, n)
	for i := range out {
		out[i] = entity.Product{ID: fmt.Sprintf("p%d", i)}
	}
	return out
}

func pageIDs(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestPaginator_PartitionsInOrder(t *testing.T) {
	for n := 0; n <= 10; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			results := numbered(n)
			p := NewPaginator(results, 0, 3)

			var seen []string
			pages := (n + 2) / 3
			for i := 0; i < pages; i++ {
				seen = append(seen, pageIDs(p.CurrentPage())...)
				p.Advance()
			}
			assert.Equal(t, pageIDs(results), append([]string{}, seen...))
			assert.Empty(t, p.CurrentPage())
			assert.False(t, p.HasMore())
			assert.True(t, p.Exhausted())
		})
	}
}

func TestPaginator_CurrentPageIdempotent(t *testing.T) {
	p := NewPaginator(numbered(5), 0, 3)
	first := pageIDs(p.CurrentPage())
	assert.Equal(t, first, pageIDs(p.CurrentPage()))
	assert.Equal(t, []string{"p0", "p1", "p2"}, first)
}

func TestPaginator_HasMore(t *testing.T) {
	p := NewPaginator(numbered(7), 0, 3)
	assert.True(t, p.HasMore())
	p.Advance()
	assert.True(t, p.HasMore(), "4 remain")
	p.Advance()
	assert.False(t, p.HasMore(), "1 remains")
	assert.Equal(t, 1, p.Remaining())

	exact := NewPaginator(numbered(3), 0, 3)
	assert.False(t, exact.HasMore())
}

func TestPaginator_AdvanceStopsAtEnd(t *testing.T) {
	p := NewPaginator(numbered(4), 0, 3)
	p.Advance()
	p.Advance()
	p.Advance()
	assert.Equal(t, 4, p.Offset())
	assert.Equal(t, 0, p.Remaining())
}

func TestPaginator_SetResultsRewinds(t *testing.T) {
	p := NewPaginator(numbered(6), 3, 3)
	p.SetResults(numbered(2))
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, []string{"p0", "p1"}, pageIDs(p.CurrentPage()))
}

func TestNewPaginator_ClampsInput(t *testing.T) {
	p := NewPaginator(numbered(5), 99, 0)
	assert.Equal(t, 5, p.Offset())
	assert.True(t, p.Exhausted())

	p = NewPaginator(numbered(5), -2, 0)
	assert.Equal(t, 0, p.Offset())
	assert.Len(t, p.CurrentPage(), DefaultPageSize)
}
