package resolvers

import (
	gqlmodels "chatshop.GO/graphql/models"
	entity "chatshop.GO/model/entity/catalog"
)

func defaultPageSize(p int32, fallback int) int {
	if p > 0 {
		return int(p)
	}
	return fallback
}

func defaultCurrentPage(p int32) int {
	if p > 0 {
		return int(p)
	}
	return 1
}

func paginate(items []entity.Product, currentPage, pageSize int) []entity.Product {
	total := len(items)
	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start >= total {
		return []entity.Product{}
	}
	if end > total {
		end = total
	}
	return items[start:end]
}

func pageInfo(total, currentPage, pageSize int) *gqlmodels.PageInfo {
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return &gqlmodels.PageInfo{
		PageSize:    int32(pageSize),
		CurrentPage: int32(currentPage),
		TotalPages:  int32(totalPages),
	}
}
