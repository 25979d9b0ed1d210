package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "chatshop.GO/model/entity/catalog"
)

func TestMemoryRepository_Find(t *testing.T) {
	repo := NewMemoryRepository(fixtureProducts()...)

	got, err := repo.Find(context.Background(), Query{ActiveOnly: true, SlugContains: "ao-thun"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids(got))

	// results are copies
	got[0].Variants[0].Price = 1
	again, err := repo.Find(context.Background(), Query{ActiveOnly: true, SlugContains: "ao-thun-do"})
	require.NoError(t, err)
	assert.Equal(t, int64(300000), again[0].Variants[0].Price)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryRepository(fixtureProducts()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Find(ctx, Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	data := `[{"id":"a1","name":"Áo polo","slug":"ao-polo","is_active":true,
		"category":{"id":"c1","name":"Áo"},"images":["x.jpg","y.jpg"],
		"variants":[{"color":"đen","size":"M","price":250000,"discountPercent":20}]}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	repo, err := NewMemoryRepositoryFromFile(path)
	require.NoError(t, err)

	got, err := repo.Find(context.Background(), Query{ActiveOnly: true, CategoryID: "c1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].CategoryID)
	assert.Equal(t, "x.jpg", got[0].FirstImage())
	assert.Equal(t, 20.0, got[0].Variants[0].DiscountPercent)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestMemoryRepository_FindByID(t *testing.T) {
	repo := NewMemoryRepository(fixtureProducts()...)

	p, err := repo.FindByID(context.Background(), "p4")
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	_, err = repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryRepository_Upsert(t *testing.T) {
	repo := NewMemoryRepository(fixtureProducts()...)
	ctx := context.Background()

	updated := fixtureProducts()[0]
	updated.Name = "Áo thun đỏ 2"
	fresh := entity.Product{ID: "p9", Name: "Váy", Slug: "vay", IsActive: true,
		Category: entity.Category{ID: "c-vay", Name: "Váy"}}
	require.NoError(t, repo.Upsert(ctx, []entity.Product{updated, fresh}))

	p, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Áo thun đỏ 2", p.Name)

	got, err := repo.Find(ctx, Query{CategoryID: "c-vay"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p9"}, ids(got))
}
