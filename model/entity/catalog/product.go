package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Product represents the products table. Read-only for the search core.
type Product struct {
	ID         string                      `gorm:"column:id;primaryKey;size:64" json:"id" mapstructure:"id"`
	Name       string                      `gorm:"column:name;size:255;not null" json:"name" mapstructure:"name"`
	Slug       string                      `gorm:"column:slug;size:255;index" json:"slug" mapstructure:"slug"`
	CategoryID string                      `gorm:"column:category_id;size:64;index" json:"-" mapstructure:"-"`
	Category   Category                    `gorm:"foreignKey:CategoryID;references:ID" json:"category" mapstructure:"category"`
	Images     datatypes.JSONSlice[string] `gorm:"column:images" json:"images" mapstructure:"images"`
	Variants   []Variant                   `gorm:"foreignKey:ProductID;references:ID" json:"variants" mapstructure:"variants"`
	IsActive   bool                        `gorm:"column:is_active;not null;default:true;index" json:"is_active" mapstructure:"is_active"`
	CreatedAt  time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at,omitempty" mapstructure:"-"`
}

func (Product) TableName() string {
	return "products"
}

// FirstImage returns the first image URL or "" when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Variant represents product_variants: one color/size/price combination.
type Variant struct {
	ID              uint    `gorm:"column:id;primaryKey;autoIncrement" json:"-" mapstructure:"-"`
	ProductID       string  `gorm:"column:product_id;size:64;index;not null" json:"-" mapstructure:"-"`
	Color           string  `gorm:"column:color;size:64" json:"color" mapstructure:"color"`
	Size            string  `gorm:"column:size;size:32" json:"size" mapstructure:"size"`
	Price           int64   `gorm:"column:price;not null;default:0" json:"price" mapstructure:"price"`
	DiscountPercent float64 `gorm:"column:discount_percent;type:decimal(5,2);not null;default:0" json:"discountPercent" mapstructure:"discountPercent"`
}

func (Variant) TableName() string {
	return "product_variants"
}

// Category represents the categories table.
type Category struct {
	ID   string `gorm:"column:id;primaryKey;size:64" json:"id" mapstructure:"id"`
	Name string `gorm:"column:name;size:255;not null" json:"name" mapstructure:"name"`
}

func (Category) TableName() string {
	return "categories"
}
