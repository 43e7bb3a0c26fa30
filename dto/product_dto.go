package dto

import (
	"github.com/lonestar/statuary-server/models"
)

// CreateProductDTO is the full create payload. Image URLs are expected to be
// resolved (already uploaded) before this request is made.
type CreateProductDTO struct {
	SKU         string            `json:"sku" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Category    string            `json:"category" binding:"required,oneof=ROMAN GREEK BUST"`
	Price       float64           `json:"price" binding:"gte=0"`
	StockStatus string            `json:"stockStatus" binding:"required,oneof=IN_STOCK LOW_STOCK OUT_OF_STOCK PRE_ORDER DISCONTINUED"`
	Dimensions  models.Dimensions `json:"dimensions" binding:"required"`
	Weight      models.Weight     `json:"weight" binding:"required"`
	Material    models.Material   `json:"material" binding:"required"`
	Edition     models.Edition    `json:"edition" binding:"required"`
	Images      models.Images     `json:"images" binding:"required"`
	Tags        []string          `json:"tags"`
}

// UpdateProductDTO has all-optional pointer fields. An update that touches
// the edition must supply the whole sub-object, internally consistent.
type UpdateProductDTO struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Price       *float64           `json:"price,omitempty"`
	StockStatus *string            `json:"stockStatus,omitempty"`
	Dimensions  *models.Dimensions `json:"dimensions,omitempty"`
	Weight      *models.Weight     `json:"weight,omitempty"`
	Material    *models.Material   `json:"material,omitempty"`
	Edition     *models.Edition    `json:"edition,omitempty"`
	Images      *models.Images     `json:"images,omitempty"`
	Tags        *[]string          `json:"tags,omitempty"`
}

// ProductQueryParams are the recognized list/filter parameters.
type ProductQueryParams struct {
	Category    string   `form:"category"`
	StockStatus string   `form:"stockStatus"`
	MinPrice    *float64 `form:"minPrice"`
	MaxPrice    *float64 `form:"maxPrice"`
	Search      string   `form:"search"`
	SortBy      string   `form:"sortBy"`
	SortOrder   string   `form:"sortOrder"`
	Page        int      `form:"page"`
	Limit       int      `form:"limit"`
}

// Product builds the store entity from a create payload. Timestamps and
// mirror references are filled in by the service.
func (d CreateProductDTO) Product() *models.Product {
	return &models.Product{
		SKU:         models.NormalizeSKU(d.SKU),
		Name:        d.Name,
		Description: d.Description,
		Category:    models.ProductCategory(d.Category),
		Price:       d.Price,
		StockStatus: models.StockStatus(d.StockStatus),
		Dimensions:  d.Dimensions,
		Weight:      d.Weight,
		Material:    d.Material,
		Edition:     d.Edition,
		Images:      d.Images,
		Tags:        d.Tags,
	}
}
