package database

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureProductIndexes creates the product collection's indexes: the unique
// SKU key, single-field and compound filter indexes, and the weighted text
// index backing free-text search.
func EnsureProductIndexes(ctx context.Context, col *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "stockStatus", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "stockStatus", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}, {Key: "category", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "material.primary", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().
				SetName("product_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "tags", Value: 5},
					{Key: "material.primary", Value: 3},
					{Key: "description", Value: 1},
				}),
		},
	}

	_, err := col.Indexes().CreateMany(ctx, indexes)
	return err
}
