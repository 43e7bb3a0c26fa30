package services

import (
	"context"
	"encoding/json"
	"math"

	"github.com/lonestar/statuary-server/models"
)

// MirrorMetadataSchemaVersion tags the metadata bag so future readers can
// detect format drift.
const MirrorMetadataSchemaVersion = "1"

// MirrorProduct is the slice of the payment platform's product record the
// sync service works with.
type MirrorProduct struct {
	ID             string
	DefaultPriceID string
	Active         bool
	Metadata       map[string]string
}

// PaymentMirror maintains the payment platform's copy of the catalog. The
// platform has no foreign key back to the store; records are joined by the
// sku key in the metadata bag, searched on demand.
type PaymentMirror interface {
	// CreateProduct creates the mirror record with its default price and
	// returns the product and price references.
	CreateProduct(ctx context.Context, p *models.Product) (*MirrorProduct, error)

	// FindBySKU searches the mirror catalog for metadata sku. Returns
	// ErrMirrorNotFound on zero matches and ErrMirrorAmbiguous on more than
	// one.
	FindBySKU(ctx context.Context, sku string) (*MirrorProduct, error)

	// UpdateProduct pushes the merged record's name, description, metadata
	// bag and active flag to the mirror. A non-empty newDefaultPriceRef
	// becomes the record's default price.
	UpdateProduct(ctx context.Context, productRef string, merged *models.Product, newDefaultPriceRef string) error

	// CreatePrice issues a new immutable price record against the mirror
	// product. Existing prices are never edited or deleted.
	CreatePrice(ctx context.Context, productRef string, unitAmount int64) (string, error)

	// Deactivate marks the mirror record inactive, preserving it for
	// financial history.
	Deactivate(ctx context.Context, sku string) error
}

// UnitAmount converts a major-unit price to the integer minor units the
// mirror expects.
func UnitAmount(price float64) int64 {
	return int64(math.Round(price * 100))
}

// MirrorMetadata builds the string-valued metadata bag carried by the mirror
// record. Nested objects are JSON-serialized since the mirror has no native
// nested-object support; the bag makes the record independently auditable.
func MirrorMetadata(env string, p *models.Product) map[string]string {
	dimensions, _ := json.Marshal(p.Dimensions)
	weight, _ := json.Marshal(p.Weight)
	material, _ := json.Marshal(p.Material)
	edition, _ := json.Marshal(p.Edition)

	return map[string]string{
		"schema_version": MirrorMetadataSchemaVersion,
		"sku":            p.SKU,
		"environment":    env,
		"category":       string(p.Category),
		"dimensions":     string(dimensions),
		"weight":         string(weight),
		"material":       string(material),
		"edition":        string(edition),
	}
}
