package services

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/lonestar/statuary-server/models"
)

// StripeMirror implements PaymentMirror against the Stripe catalog.
type StripeMirror struct {
	api *client.API
	env string
}

func NewStripeMirror(secretKey string) *StripeMirror {
	api := &client.API{}
	api.Init(secretKey, nil)

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return &StripeMirror{api: api, env: env}
}

func (m *StripeMirror) CreateProduct(ctx context.Context, p *models.Product) (*MirrorProduct, error) {
	params := &stripe.ProductParams{
		Name:        stripe.String(p.Name),
		Description: stripe.String(p.Description),
		DefaultPriceData: &stripe.ProductDefaultPriceDataParams{
			Currency:    stripe.String("usd"),
			UnitAmount:  stripe.Int64(UnitAmount(p.Price)),
			TaxBehavior: stripe.String("exclusive"),
		},
		Shippable: stripe.Bool(true),
		PackageDimensions: &stripe.ProductPackageDimensionsParams{
			Height: stripe.Float64(p.Dimensions.Height),
			Width:  stripe.Float64(p.Dimensions.Width),
			Length: stripe.Float64(p.Dimensions.Depth),
			Weight: stripe.Float64(weightGrams(p.Weight)),
		},
		StatementDescriptor: stripe.String(statementDescriptor(p.Material.Primary)),
		UnitLabel:           stripe.String("sculpture"),
		Active:              stripe.Bool(p.StockStatus != models.StockDiscontinued),
	}
	params.Context = ctx
	for k, v := range MirrorMetadata(m.env, p) {
		params.AddMetadata(k, v)
	}
	// Image URLs are only public in production.
	if m.env == "production" {
		params.Images = stripe.StringSlice(p.Images.Main)
	}

	prod, err := m.api.Products.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe product create: %w", err)
	}

	ref := &MirrorProduct{ID: prod.ID, Active: prod.Active, Metadata: prod.Metadata}
	if prod.DefaultPrice != nil {
		ref.DefaultPriceID = prod.DefaultPrice.ID
	}
	return ref, nil
}

func (m *StripeMirror) FindBySKU(ctx context.Context, sku string) (*MirrorProduct, error) {
	params := &stripe.ProductSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("metadata['sku']:'%s'", sku),
			Context: ctx,
		},
	}

	iter := m.api.Products.Search(params)
	var matches []*stripe.Product
	for iter.Next() {
		matches = append(matches, iter.Product())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe product search: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrMirrorNotFound
	case 1:
	default:
		return nil, ErrMirrorAmbiguous
	}

	prod := matches[0]
	ref := &MirrorProduct{ID: prod.ID, Active: prod.Active, Metadata: prod.Metadata}
	if prod.DefaultPrice != nil {
		ref.DefaultPriceID = prod.DefaultPrice.ID
	}
	return ref, nil
}

func (m *StripeMirror) UpdateProduct(ctx context.Context, productRef string, merged *models.Product, newDefaultPriceRef string) error {
	params := &stripe.ProductParams{
		Name:        stripe.String(merged.Name),
		Description: stripe.String(merged.Description),
		Active:      stripe.Bool(merged.StockStatus != models.StockDiscontinued),
	}
	params.Context = ctx
	for k, v := range MirrorMetadata(m.env, merged) {
		params.AddMetadata(k, v)
	}
	if newDefaultPriceRef != "" {
		params.DefaultPrice = stripe.String(newDefaultPriceRef)
	}
	if m.env == "production" {
		params.Images = stripe.StringSlice(merged.Images.Main)
	}

	if _, err := m.api.Products.Update(productRef, params); err != nil {
		return fmt.Errorf("stripe product update: %w", err)
	}
	return nil
}

func (m *StripeMirror) CreatePrice(ctx context.Context, productRef string, unitAmount int64) (string, error) {
	params := &stripe.PriceParams{
		Product:     stripe.String(productRef),
		Currency:    stripe.String("usd"),
		UnitAmount:  stripe.Int64(unitAmount),
		TaxBehavior: stripe.String("exclusive"),
	}
	params.Context = ctx

	price, err := m.api.Prices.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe price create: %w", err)
	}
	return price.ID, nil
}

func (m *StripeMirror) Deactivate(ctx context.Context, sku string) error {
	mp, err := m.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}

	params := &stripe.ProductParams{Active: stripe.Bool(false)}
	params.Context = ctx
	if _, err := m.api.Products.Update(mp.ID, params); err != nil {
		return fmt.Errorf("stripe product deactivate: %w", err)
	}
	return nil
}

func weightGrams(w models.Weight) float64 {
	if w.Unit == "KG" {
		return math.Round(w.Value * 1000)
	}
	return math.Round(w.Value * 453.592)
}

// Stripe caps statement descriptors at 22 characters.
func statementDescriptor(primary string) string {
	s := strings.ToUpper(primary)
	if len(s) > 22 {
		s = s[:22]
	}
	return s
}
