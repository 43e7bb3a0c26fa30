package services

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/lonestar/statuary-server/dto"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListQuery is the store-level translation of the public query parameters.
type ListQuery struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
}

// BuildProductQuery AND-combines the recognized filters and computes the
// sort and page window. It is filter-mechanical only: soft-deleted records
// are not excluded here, callers wanting storefront semantics filter
// DISCONTINUED themselves.
func BuildProductQuery(q dto.ProductQueryParams) ListQuery {
	filter := bson.M{}

	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.StockStatus != "" {
		filter["stockStatus"] = q.StockStatus
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}

	sortField := "createdAt"
	switch q.SortBy {
	case "price", "name", "createdAt":
		sortField = q.SortBy
	}
	order := -1
	if q.SortOrder == "asc" {
		order = 1
	}

	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	return ListQuery{
		Filter: filter,
		Sort:   bson.D{{Key: sortField, Value: order}},
		Skip:   int64(page-1) * int64(limit),
		Limit:  int64(limit),
	}
}
