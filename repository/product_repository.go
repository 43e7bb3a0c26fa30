package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/lonestar/statuary-server/models"
	"github.com/lonestar/statuary-server/services"
	"github.com/lonestar/statuary-server/utils"
)

// ProductRepository is the Mongo-backed catalog store.
type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{collection: collection}
}

func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	// Schema checks run on every save, inserts included.
	if err := p.Validate(); err != nil {
		return &services.ValidationError{Detail: err.Error()}
	}

	p.ID = bson.NewObjectID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return services.ErrDuplicateSKU
		}
		return err
	}
	return nil
}

// FindByID returns the record regardless of soft-delete state; a
// discontinued record is still addressable by id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, services.ErrNotFound
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Find(ctx context.Context, q services.ListQuery) ([]models.Product, error) {
	findOpts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.collection.Find(ctx, q.Filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) UpdateByID(ctx context.Context, id string, set bson.M) (*models.Product, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, services.ErrNotFound
	}

	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		if utils.IsDuplicateKey(err) {
			return nil, services.ErrDuplicateSKU
		}
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepository) MarkDeleted(ctx context.Context, id string, at time.Time) (bool, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"deletedAt":   at,
			"stockStatus": models.StockDiscontinued,
			"updatedAt":   at,
		},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
