package catalog

import entity "chatshop.GO/model/entity/catalog"

func fixtureProducts() []entity.Product {
	return []entity.Product{
		{
			ID: "p1", Name: "Áo thun đỏ", Slug: "ao-thun-do", IsActive: true,
			Category: entity.Category{ID: "c-ao", Name: "Áo"},
			Images:   []string{"https://cdn.test/p1.jpg"},
			Variants: []entity.Variant{
				{Color: "đỏ", Size: "M", Price: 300000},
				{Color: "đỏ", Size: "L", Price: 320000},
			},
		},
		{
			ID: "p2", Name: "Áo thun trắng", Slug: "ao-thun-trang", IsActive: true,
			Category: entity.Category{ID: "c-ao", Name: "Áo"},
			Variants: []entity.Variant{{Color: "trắng", Size: "XL", Price: 450000, DiscountPercent: 10}},
		},
		{
			ID: "p3", Name: "Quần jean 100%", Slug: "quan-jean-100%", IsActive: true,
			Category: entity.Category{ID: "c-quan", Name: "Quần"},
			Variants: []entity.Variant{{Color: "xanh", Size: "32", Price: 900000}},
		},
		{
			ID: "p4", Name: "Áo thun cũ", Slug: "ao-thun-cu", IsActive: false,
			Category: entity.Category{ID: "c-ao", Name: "Áo"},
			Variants: []entity.Variant{{Color: "đỏ", Size: "M", Price: 100000}},
		},
	}
}

func ids(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
