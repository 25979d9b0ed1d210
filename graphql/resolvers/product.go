package resolvers

import (
	"context"

	gqlmodels "chatshop.GO/graphql/models"
	"chatshop.GO/service/search"
)

// ProductsArgs matches the products query arguments (defaults in schema: pageSize=3, currentPage=1).
type ProductsArgs struct {
	Name        *string
	Color       *string
	Size        *string
	PriceRange  *string
	CategoryID  *string
	PageSize    int32
	CurrentPage int32
}

func (a ProductsArgs) entities() []search.Entity {
	var out []search.Entity
	add := func(name string, v *string) {
		if v != nil && *v != "" {
			out = append(out, search.Entity{Entity: name, Value: *v})
		}
	}
	add(search.EntityName, a.Name)
	add(search.EntityColor, a.Color)
	add(search.EntitySize, a.Size)
	add(search.EntityPriceRange, a.PriceRange)
	add(search.EntityCategoryID, a.CategoryID)
	return out
}

// Products previews what a chat search with these filters would return.
func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductSearchResult, error) {
	filters, products, err := r.engine.Preview(ctx, args.entities())
	if err != nil {
		return nil, err
	}
	ps := defaultPageSize(args.PageSize, r.engine.PageSize())
	cp := defaultCurrentPage(args.CurrentPage)
	return &gqlmodels.ProductSearchResult{
		Items:      toProducts(paginate(products, cp, ps)),
		TotalCount: int32(len(products)),
		PageInfo:   pageInfo(len(products), cp, ps),
		Filters:    toFilters(filters),
	}, nil
}

func (r *QueryResolver) PriceBands() []*gqlmodels.PriceBand {
	bands := search.Bands()
	out := make([]*gqlmodels.PriceBand, 0, len(bands))
	for _, b := range bands {
		out = append(out, &gqlmodels.PriceBand{Name: b.String()})
	}
	return out
}
