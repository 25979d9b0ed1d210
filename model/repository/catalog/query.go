package catalog

import (
	"context"
	"errors"
	"strings"

	entity "chatshop.GO/model/entity/catalog"
)

// Query is the backend-neutral catalog filter. Empty fields add no constraint.
// SlugContains, Color and Size are case-insensitive literal substrings; every
// backend escapes them for its own pattern syntax.
type Query struct {
	ActiveOnly   bool
	SlugContains string
	Color        string
	Size         string
	CategoryID   string
}

// IsZero reports whether the query constrains nothing besides activity.
func (q Query) IsZero() bool {
	return q.SlugContains == "" && q.Color == "" && q.Size == "" && q.CategoryID == ""
}

// Matches evaluates the query against a single product in memory.
func (q Query) Matches(p *entity.Product) bool {
	if q.ActiveOnly && !p.IsActive {
		return false
	}
	if q.SlugContains != "" && !containsFold(p.Slug, q.SlugContains) {
		return false
	}
	if q.CategoryID != "" && categoryID(p) != q.CategoryID {
		return false
	}
	if q.Color != "" && !anyVariant(p, func(v *entity.Variant) bool { return containsFold(v.Color, q.Color) }) {
		return false
	}
	if q.Size != "" && !anyVariant(p, func(v *entity.Variant) bool { return containsFold(v.Size, q.Size) }) {
		return false
	}
	return true
}

// Finder is the catalog collaborator used by the search engine.
type Finder interface {
	Find(ctx context.Context, q Query) ([]entity.Product, error)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyVariant(p *entity.Product, pred func(v *entity.Variant) bool) bool {
	for i := range p.Variants {
		if pred(&p.Variants[i]) {
			return true
		}
	}
	return false
}

func categoryID(p *entity.Product) string {
	if p.CategoryID != "" {
		return p.CategoryID
	}
	return p.Category.ID
}

// ErrProductNotFound is returned by Getter implementations for an unknown id.
var ErrProductNotFound = errors.New("product not found")

// Getter loads one product by id regardless of its active flag.
type Getter interface {
	FindByID(ctx context.Context, id string) (*entity.Product, error)
}

// Writer stores products, replacing existing ones with the same id.
type Writer interface {
	Upsert(ctx context.Context, products []entity.Product) error
}
