package models

// --- Product ---

type Product struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Category *Category  `json:"category,omitempty"`
	Price    float64    `json:"price"`
	Image    *string    `json:"image,omitempty"`
	Images   []string   `json:"images"`
	Variants []*Variant `json:"variants"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Variant struct {
	Color           string   `json:"color"`
	Size            string   `json:"size"`
	Price           float64  `json:"price"`
	DiscountPercent float64  `json:"discountPercent"`
	EffectivePrice  *float64 `json:"effectivePrice,omitempty"`
}

// --- Search ---

type ProductSearchResult struct {
	Items      []*Product `json:"items"`
	TotalCount int32      `json:"totalCount"`
	PageInfo   *PageInfo  `json:"pageInfo"`
	Filters    *Filters   `json:"filters"`
}

type PageInfo struct {
	PageSize    int32 `json:"pageSize"`
	CurrentPage int32 `json:"currentPage"`
	TotalPages  int32 `json:"totalPages"`
}

type Filters struct {
	Name       *string `json:"name,omitempty"`
	Color      *string `json:"color,omitempty"`
	Size       *string `json:"size,omitempty"`
	PriceRange *string `json:"priceRange,omitempty"`
	CategoryID *string `json:"categoryId,omitempty"`
}

type PriceBand struct {
	Name string `json:"name"`
}

// --- Session ---

type Session struct {
	ID          string      `json:"id"`
	Filters     *Filters    `json:"filters"`
	Offset      int32       `json:"offset"`
	ResultCount int32       `json:"resultCount"`
	CurrentPage []*Product  `json:"currentPage"`
	Suggestion  *Suggestion `json:"suggestion,omitempty"`
}

type Suggestion struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

// --- Extensions ---

type ExtensionInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    []string `json:"required"`
}
