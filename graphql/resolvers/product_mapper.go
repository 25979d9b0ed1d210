package resolvers

import (
	gqlmodels "chatshop.GO/graphql/models"
	entity "chatshop.GO/model/entity/catalog"
	"chatshop.GO/service/search"
)

// toProduct maps a catalog entity; price and image follow the chat card view.
func toProduct(p *entity.Product) *gqlmodels.Product {
	view := search.NewSummaryView(p)
	out := &gqlmodels.Product{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Price:    float64(view.Price),
		Images:   append([]string{}, p.Images...),
		Variants: make([]*gqlmodels.Variant, 0, len(p.Variants)),
	}
	if p.Category.ID != "" || p.Category.Name != "" {
		out.Category = &gqlmodels.Category{ID: p.Category.ID, Name: p.Category.Name}
	}
	if view.Image != "" {
		out.Image = strPtr(view.Image)
	}
	for _, v := range p.Variants {
		gv := &gqlmodels.Variant{
			Color:           v.Color,
			Size:            v.Size,
			Price:           float64(v.Price),
			DiscountPercent: v.DiscountPercent,
		}
		if eff, ok := search.EffectivePrice(v); ok {
			f := float64(eff)
			gv.EffectivePrice = &f
		}
		out.Variants = append(out.Variants, gv)
	}
	return out
}

func toProducts(products []entity.Product) []*gqlmodels.Product {
	out := make([]*gqlmodels.Product, 0, len(products))
	for i := range products {
		out = append(out, toProduct(&products[i]))
	}
	return out
}

func toFilters(f search.FilterSet) *gqlmodels.Filters {
	return &gqlmodels.Filters{
		Name:       optional(f.Name),
		Color:      optional(f.Color),
		Size:       optional(f.Size),
		PriceRange: optional(f.PriceRange),
		CategoryID: optional(f.CategoryID),
	}
}

func strPtr(s string) *string {
	return &s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
