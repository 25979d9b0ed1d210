package search

import "chatshop.GO/model/repository/catalog"

// BuildQuery translates filters into a catalog query. Price is not part of it;
// bands are evaluated on effective prices after the fetch.
func BuildQuery(f FilterSet) catalog.Query {
	q := catalog.Query{
		ActiveOnly: true,
		Color:      f.Color,
		Size:       f.Size,
		CategoryID: f.CategoryID,
	}
	if f.Name != "" {
		q.SlugContains = Slugify(f.Name)
	}
	return q
}
