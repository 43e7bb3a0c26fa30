package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/lonestar/statuary-server/dto"
	"github.com/lonestar/statuary-server/models"
)

// ProductStore is the persistence surface the sync service writes through.
type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Find(ctx context.Context, q ListQuery) ([]models.Product, error)
	UpdateByID(ctx context.Context, id string, set bson.M) (*models.Product, error)
	MarkDeleted(ctx context.Context, id string, at time.Time) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// ProductService keeps one store record and one mirror record consistent per
// product. Writes go mirror first, store second; nothing spans the two
// systems transactionally and no compensation runs on partial failure. A
// mirror record left dangling, or ahead of the store, is an accepted
// inconsistency surfaced to the caller, who retries manually.
type ProductService struct {
	store  ProductStore
	mirror PaymentMirror
}

func NewProductService(store ProductStore, mirror PaymentMirror) *ProductService {
	return &ProductService{store: store, mirror: mirror}
}

// Create creates the mirror record first, then persists the store record
// with the returned references attached. A mirror failure aborts before
// anything is written; a store failure after mirror success leaves the
// mirror record orphaned.
func (s *ProductService) Create(ctx context.Context, in dto.CreateProductDTO) (*models.Product, error) {
	p := in.Product()
	if err := p.Validate(); err != nil {
		return nil, &ValidationError{Detail: err.Error()}
	}

	ref, err := s.mirror.CreateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("creating payment mirror: %w", err)
	}
	p.PaymentProductRef = ref.ID
	p.PaymentPriceRef = ref.DefaultPriceID

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("persisting record: %w", err)
	}
	return p, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.store.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, params dto.ProductQueryParams) ([]models.Product, error) {
	return s.store.Find(ctx, BuildProductQuery(params))
}

// Update pushes the partial payload to the mirror first (locating it by the
// stored SKU), issuing a new immutable price record if the price changed,
// then persists the same updates to the store.
func (s *ProductService) Update(ctx context.Context, id string, in dto.UpdateProductDTO) (*models.Product, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	set := applyUpdate(&merged, in)
	if err := merged.Validate(); err != nil {
		return nil, &ValidationError{Detail: err.Error()}
	}

	mp, err := s.mirror.FindBySKU(ctx, existing.SKU)
	if err != nil {
		return nil, fmt.Errorf("locating mirror record: %w", err)
	}

	var newPriceRef string
	if in.Price != nil {
		newPriceRef, err = s.mirror.CreatePrice(ctx, mp.ID, UnitAmount(*in.Price))
		if err != nil {
			return nil, fmt.Errorf("creating mirror price: %w", err)
		}
		set["paymentPriceRef"] = newPriceRef
	}

	if err := s.mirror.UpdateProduct(ctx, mp.ID, &merged, newPriceRef); err != nil {
		return nil, fmt.Errorf("updating payment mirror: %w", err)
	}

	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		// The mirror is now ahead of the store.
		return nil, fmt.Errorf("persisting record: %w", err)
	}
	return updated, nil
}

// SoftDelete deactivates the mirror record and marks the store record
// DISCONTINUED with a deletion timestamp. Returns false if the id is
// unknown.
func (s *ProductService) SoftDelete(ctx context.Context, id string) (bool, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.mirror.Deactivate(ctx, existing.SKU); err != nil {
		return false, fmt.Errorf("deactivating payment mirror: %w", err)
	}
	return s.store.MarkDeleted(ctx, id, time.Now().UTC())
}

// HardDelete purges the store record only. The mirror is untouched: its
// deactivation is softDelete's job, or manual cleanup.
func (s *ProductService) HardDelete(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteByID(ctx, id)
}

// applyUpdate copies present fields onto the merged snapshot and returns the
// matching $set document.
func applyUpdate(p *models.Product, in dto.UpdateProductDTO) bson.M {
	set := bson.M{}
	if in.Name != nil {
		p.Name = *in.Name
		set["name"] = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
		set["description"] = *in.Description
	}
	if in.Category != nil {
		p.Category = models.ProductCategory(*in.Category)
		set["category"] = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
		set["price"] = *in.Price
	}
	if in.StockStatus != nil {
		p.StockStatus = models.StockStatus(*in.StockStatus)
		set["stockStatus"] = *in.StockStatus
	}
	if in.Dimensions != nil {
		p.Dimensions = *in.Dimensions
		set["dimensions"] = *in.Dimensions
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
		set["weight"] = *in.Weight
	}
	if in.Material != nil {
		p.Material = *in.Material
		set["material"] = *in.Material
	}
	if in.Edition != nil {
		p.Edition = *in.Edition
		set["edition"] = *in.Edition
	}
	if in.Images != nil {
		p.Images = *in.Images
		set["images"] = *in.Images
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
		set["tags"] = *in.Tags
	}
	return set
}
