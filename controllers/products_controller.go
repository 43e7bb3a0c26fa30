package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lonestar/statuary-server/dto"
	"github.com/lonestar/statuary-server/services"
	"github.com/lonestar/statuary-server/utils"
)

// POST /api/products
func CreateProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product", "details": err.Error()})
			return
		}

		product, err := svc.Create(c.Request.Context(), body)
		if err != nil {
			log.Println("create product:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// GET /api/products
func GetProducts(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		minPrice, err := utils.ParseFloatQuery(c.Query("minPrice"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		maxPrice, err := utils.ParseFloatQuery(c.Query("maxPrice"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}

		params := dto.ProductQueryParams{
			Category:    c.Query("category"),
			StockStatus: c.Query("stockStatus"),
			MinPrice:    minPrice,
			MaxPrice:    maxPrice,
			Search:      c.Query("search"),
			SortBy:      c.Query("sortBy"),
			SortOrder:   c.Query("sortOrder"),
			Page:        utils.ParseIntDefault(c.Query("page"), 1),
			Limit:       utils.ParseIntDefault(c.Query("limit"), 10),
		}

		products, err := svc.List(c.Request.Context(), params)
		if err != nil {
			log.Println("list products:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id
func GetProductByID(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Println("get product:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// PATCH /api/products/:id
func UpdateProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update product", "details": err.Error()})
			return
		}

		product, err := svc.Update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Println("update product:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update product", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/products/:id
func DeleteProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := svc.SoftDelete(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Println("delete product:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product", "details": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// DELETE /api/products/:id/hard
func HardDeleteProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := svc.HardDelete(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Println("hard delete product:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to permanently delete product", "details": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product permanently deleted"})
	}
}
