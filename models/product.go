package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProductCategory string

const (
	CategoryRoman ProductCategory = "ROMAN"
	CategoryGreek ProductCategory = "GREEK"
	CategoryBust  ProductCategory = "BUST"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryRoman, CategoryGreek, CategoryBust:
		return true
	}
	return false
}

type StockStatus string

const (
	StockInStock      StockStatus = "IN_STOCK"
	StockLowStock     StockStatus = "LOW_STOCK"
	StockOutOfStock   StockStatus = "OUT_OF_STOCK"
	StockPreOrder     StockStatus = "PRE_ORDER"
	StockDiscontinued StockStatus = "DISCONTINUED"
)

func (s StockStatus) Valid() bool {
	switch s {
	case StockInStock, StockLowStock, StockOutOfStock, StockPreOrder, StockDiscontinued:
		return true
	}
	return false
}

type Dimensions struct {
	Height float64 `bson:"height" json:"height"`
	Width  float64 `bson:"width" json:"width"`
	Depth  float64 `bson:"depth" json:"depth"`
	Unit   string  `bson:"unit" json:"unit"`
}

type Weight struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"`
}

type Material struct {
	Primary string `bson:"primary" json:"primary"`
	Finish  string `bson:"finish,omitempty" json:"finish,omitempty"`
	Color   string `bson:"color,omitempty" json:"color,omitempty"`
}

// Edition tracks limited-run information for collectible pieces.
// AvailableQuantity + SoldCount must always equal RunSize.
type Edition struct {
	IsLimited         bool       `bson:"isLimited" json:"isLimited"`
	MoldCreationDate  *time.Time `bson:"moldCreationDate,omitempty" json:"moldCreationDate,omitempty"`
	RunSize           int        `bson:"runSize" json:"runSize"`
	AvailableQuantity int        `bson:"availableQuantity" json:"availableQuantity"`
	SoldCount         int        `bson:"soldCount" json:"soldCount"`
}

func (e Edition) Validate() error {
	if e.RunSize < 1 {
		return fmt.Errorf("edition.runSize: must be at least 1")
	}
	if e.AvailableQuantity < 0 {
		return fmt.Errorf("edition.availableQuantity: must not be negative")
	}
	if e.SoldCount < 0 {
		return fmt.Errorf("edition.soldCount: must not be negative")
	}
	if e.AvailableQuantity+e.SoldCount != e.RunSize {
		return fmt.Errorf("edition: available quantity plus sold count must equal run size")
	}
	return nil
}

type Images struct {
	Thumbnail  string   `bson:"thumbnail" json:"thumbnail"`
	Main       []string `bson:"main" json:"main"`
	ThreeSixty []string `bson:"threeSixty,omitempty" json:"threeSixty,omitempty"`
}

type Product struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	SKU         string          `bson:"sku" json:"sku"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description" json:"description"`
	Category    ProductCategory `bson:"category" json:"category"`
	Price       float64         `bson:"price" json:"price"`
	StockStatus StockStatus     `bson:"stockStatus" json:"stockStatus"`
	Dimensions  Dimensions      `bson:"dimensions" json:"dimensions"`
	Weight      Weight          `bson:"weight" json:"weight"`
	Material    Material        `bson:"material" json:"material"`
	Edition     Edition         `bson:"edition" json:"edition"`
	Images      Images          `bson:"images" json:"images"`
	Tags        []string        `bson:"tags,omitempty" json:"tags,omitempty"`

	// References into the payment platform's catalog, set once mirror
	// creation succeeds. The price reference points at the current default
	// price; superseded prices stay behind as immutable history.
	PaymentProductRef string `bson:"paymentProductRef,omitempty" json:"paymentProductRef,omitempty"`
	PaymentPriceRef   string `bson:"paymentPriceRef,omitempty" json:"paymentPriceRef,omitempty"`

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// NormalizeSKU applies the canonical form used as the cross-system join key.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Validate runs the schema checks the store enforces before every persist.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("sku: required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name: required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("description: required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("category: must be one of ROMAN, GREEK, BUST")
	}
	if p.Price < 0 {
		return fmt.Errorf("price: must not be negative")
	}
	if !p.StockStatus.Valid() {
		return fmt.Errorf("stockStatus: unknown value %q", p.StockStatus)
	}
	if p.Dimensions.Unit != "INCHES" && p.Dimensions.Unit != "CM" {
		return fmt.Errorf("dimensions.unit: must be INCHES or CM")
	}
	if p.Weight.Unit != "LBS" && p.Weight.Unit != "KG" {
		return fmt.Errorf("weight.unit: must be LBS or KG")
	}
	if strings.TrimSpace(p.Material.Primary) == "" {
		return fmt.Errorf("material.primary: required")
	}
	if err := p.Edition.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Images.Thumbnail) == "" {
		return fmt.Errorf("images.thumbnail: required")
	}
	if p.Images.Main == nil {
		return fmt.Errorf("images.main: required")
	}
	return nil
}
