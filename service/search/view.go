package search

import entity "chatshop.GO/model/entity/catalog"

// ProductSummaryView is the card shown in the chat. Derived per response.
type ProductSummaryView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
}

func NewSummaryView(p *entity.Product) ProductSummaryView {
	return ProductSummaryView{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category.Name,
		Slug:     p.Slug,
		Price:    MinPrice(EffectivePrices(p.Variants)),
		Image:    p.FirstImage(),
	}
}

func SummaryViews(products []entity.Product) []ProductSummaryView {
	views := make([]ProductSummaryView, 0, len(products))
	for i := range products {
		views = append(views, NewSummaryView(&products[i]))
	}
	return views
}
