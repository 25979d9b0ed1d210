package catalog

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "chatshop.GO/model/entity/catalog"
)

// likeEscaper escapes LIKE wildcards with '!' so user input stays literal.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

const (
	variantColorClause = `EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND LOWER(v.color) LIKE ? ESCAPE '!')`
	variantSizeClause  = `EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND LOWER(v.size) LIKE ? ESCAPE '!')`
)

type SQLRepository struct {
	db *gorm.DB
}

func NewSQLRepository(db *gorm.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Find returns matching products with category and variants loaded, in insertion order.
func (r *SQLRepository) Find(ctx context.Context, q Query) ([]entity.Product, error) {
	tx := r.db.WithContext(ctx).Model(&entity.Product{})
	if q.ActiveOnly {
		tx = tx.Where("products.is_active = ?", true)
	}
	if q.SlugContains != "" {
		tx = tx.Where("LOWER(products.slug) LIKE ? ESCAPE '!'", likePattern(q.SlugContains))
	}
	if q.Color != "" {
		tx = tx.Where(variantColorClause, likePattern(q.Color))
	}
	if q.Size != "" {
		tx = tx.Where(variantSizeClause, likePattern(q.Size))
	}
	if q.CategoryID != "" {
		tx = tx.Where("products.category_id = ?", q.CategoryID)
	}

	var products []entity.Product
	err := tx.
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("products.created_at, products.id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads a single product, active or not.
func (r *SQLRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert writes products with their category, replacing existing variants.
func (r *SQLRepository) Upsert(ctx context.Context, products []entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			p := products[i]
			if p.CategoryID == "" {
				p.CategoryID = p.Category.ID
			}
			if p.Category.ID != "" {
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&p.Category).Error; err != nil {
					return err
				}
			}
			variants := p.Variants
			p.Variants = nil
			if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", p.ID).Delete(&entity.Variant{}).Error; err != nil {
				return err
			}
			for j := range variants {
				v := variants[j]
				v.ID = 0
				v.ProductID = p.ID
				if err := tx.Create(&v).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// AutoMigrate creates the catalog tables. Used for sqlite; MySQL goes through db:migrate.
func (r *SQLRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&entity.Category{}, &entity.Product{}, &entity.Variant{})
}

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
