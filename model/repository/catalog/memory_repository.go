package catalog

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"

	entity "chatshop.GO/model/entity/catalog"
)

// MemoryRepository serves a catalog held in process, typically loaded from a JSON file.
type MemoryRepository struct {
	mu       sync.RWMutex
	products []entity.Product
}

func NewMemoryRepository(products ...entity.Product) *MemoryRepository {
	r := &MemoryRepository{}
	r.Replace(products)
	return r
}

// LoadFile reads a JSON array of products.
func LoadFile(path string) ([]entity.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog file %s", path)
	}
	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrapf(err, "decode catalog file %s", path)
	}
	for i := range products {
		if products[i].CategoryID == "" {
			products[i].CategoryID = products[i].Category.ID
		}
	}
	return products, nil
}

// NewMemoryRepositoryFromFile builds a repository from LoadFile.
func NewMemoryRepositoryFromFile(path string) (*MemoryRepository, error) {
	products, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(products...), nil
}

// Replace swaps the whole catalog.
func (r *MemoryRepository) Replace(products []entity.Product) {
	cp := make([]entity.Product, len(products))
	for i := range products {
		cp[i] = cloneProduct(products[i])
	}
	r.mu.Lock()
	r.products = cp
	r.mu.Unlock()
}

// Upsert replaces products by id and appends new ones.
func (r *MemoryRepository) Upsert(ctx context.Context, products []entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range products {
		p := cloneProduct(products[i])
		if p.CategoryID == "" {
			p.CategoryID = p.Category.ID
		}
		replaced := false
		for j := range r.products {
			if r.products[j].ID == p.ID {
				r.products[j] = p
				replaced = true
				break
			}
		}
		if !replaced {
			r.products = append(r.products, p)
		}
	}
	return nil
}

// Find returns copies of matching products in insertion order.
func (r *MemoryRepository) Find(ctx context.Context, q Query) ([]entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Product
	for i := range r.products {
		if q.Matches(&r.products[i]) {
			out = append(out, cloneProduct(r.products[i]))
		}
	}
	return out, nil
}

// FindByID returns a copy of the product with the given id.
func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.products {
		if r.products[i].ID == id {
			p := cloneProduct(r.products[i])
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func cloneProduct(p entity.Product) entity.Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	if p.Variants != nil {
		p.Variants = append([]entity.Variant(nil), p.Variants...)
	}
	return p
}
