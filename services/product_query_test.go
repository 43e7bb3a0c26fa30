package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/lonestar/statuary-server/dto"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildProductQueryDefaults(t *testing.T) {
	q := BuildProductQuery(dto.ProductQueryParams{})

	assert.Empty(t, q.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
	assert.Equal(t, int64(0), q.Skip)
	assert.Equal(t, int64(10), q.Limit)
}

func TestBuildProductQueryFilters(t *testing.T) {
	t.Run("filters are AND-combined", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{
			Category:    "ROMAN",
			StockStatus: "IN_STOCK",
			MinPrice:    floatPtr(100),
		})

		assert.Equal(t, "ROMAN", q.Filter["category"])
		assert.Equal(t, "IN_STOCK", q.Filter["stockStatus"])
		assert.Equal(t, bson.M{"$gte": 100.0}, q.Filter["price"])
	})

	t.Run("price range is inclusive and combinable", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{
			MinPrice: floatPtr(50),
			MaxPrice: floatPtr(150),
		})

		assert.Equal(t, bson.M{"$gte": 50.0, "$lte": 150.0}, q.Filter["price"])
	})

	t.Run("search maps to text query", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{Search: "marble bust"})

		assert.Equal(t, bson.M{"$search": "marble bust"}, q.Filter["$text"])
	})

	t.Run("absent filters add no constraints", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{Category: "GREEK"})

		require.Len(t, q.Filter, 1)
	})
}

func TestBuildProductQuerySort(t *testing.T) {
	t.Run("whitelisted sort fields", func(t *testing.T) {
		for _, field := range []string{"price", "name", "createdAt"} {
			q := BuildProductQuery(dto.ProductQueryParams{SortBy: field})
			assert.Equal(t, field, q.Sort[0].Key)
		}
	})

	t.Run("unknown sort field falls back to createdAt", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{SortBy: "sku"})
		assert.Equal(t, "createdAt", q.Sort[0].Key)
	})

	t.Run("asc flips the order", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{SortOrder: "asc"})
		assert.Equal(t, 1, q.Sort[0].Value)

		q = BuildProductQuery(dto.ProductQueryParams{SortOrder: "desc"})
		assert.Equal(t, -1, q.Sort[0].Value)
	})
}

func TestBuildProductQueryPagination(t *testing.T) {
	t.Run("skip is computed from one-based page", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{Page: 2, Limit: 10})
		assert.Equal(t, int64(10), q.Skip)
		assert.Equal(t, int64(10), q.Limit)

		q = BuildProductQuery(dto.ProductQueryParams{Page: 3, Limit: 25})
		assert.Equal(t, int64(50), q.Skip)
		assert.Equal(t, int64(25), q.Limit)
	})

	t.Run("out-of-range values fall back to defaults", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{Page: -1, Limit: 0})
		assert.Equal(t, int64(0), q.Skip)
		assert.Equal(t, int64(10), q.Limit)
	})

	t.Run("no upper bound on limit", func(t *testing.T) {
		q := BuildProductQuery(dto.ProductQueryParams{Limit: 5000})
		assert.Equal(t, int64(5000), q.Limit)
	})
}
