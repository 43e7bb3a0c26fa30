package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/lonestar/statuary-server/models"
	"github.com/lonestar/statuary-server/services"
)

type memStore struct {
	products map[string]*models.Product
}

func newMemStore() *memStore {
	return &memStore{products: map[string]*models.Product{}}
}

func (s *memStore) Insert(_ context.Context, p *models.Product) error {
	p.ID = bson.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID.Hex()] = p
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memStore) Find(_ context.Context, _ services.ListQuery) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memStore) UpdateByID(_ context.Context, id string, set bson.M) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	if name, ok := set["name"].(string); ok {
		p.Name = name
	}
	copied := *p
	return &copied, nil
}

func (s *memStore) MarkDeleted(_ context.Context, id string, at time.Time) (bool, error) {
	p, ok := s.products[id]
	if !ok {
		return false, nil
	}
	p.StockStatus = models.StockDiscontinued
	p.DeletedAt = &at
	return true, nil
}

func (s *memStore) DeleteByID(_ context.Context, id string) (bool, error) {
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

type memMirror struct{}

func (memMirror) CreateProduct(_ context.Context, p *models.Product) (*services.MirrorProduct, error) {
	return &services.MirrorProduct{ID: "prod_" + p.SKU, DefaultPriceID: "price_" + p.SKU, Active: true}, nil
}

func (memMirror) FindBySKU(_ context.Context, sku string) (*services.MirrorProduct, error) {
	return &services.MirrorProduct{ID: "prod_" + sku, DefaultPriceID: "price_" + sku, Active: true}, nil
}

func (memMirror) UpdateProduct(_ context.Context, _ string, _ *models.Product, _ string) error {
	return nil
}

func (memMirror) CreatePrice(_ context.Context, _ string, _ int64) (string, error) {
	return "price_replacement", nil
}

func (memMirror) Deactivate(_ context.Context, _ string) error { return nil }

func newProductRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewProductService(store, memMirror{})

	r := gin.New()
	r.GET("/api/products", GetProducts(svc))
	r.GET("/api/products/:id", GetProductByID(svc))
	r.POST("/api/products", CreateProduct(svc))
	r.PATCH("/api/products/:id", UpdateProduct(svc))
	r.DELETE("/api/products/:id", DeleteProduct(svc))
	r.DELETE("/api/products/:id/hard", HardDeleteProduct(svc))
	return r
}

func createBody() map[string]any {
	return map[string]any{
		"sku":         "GRK-002",
		"name":        "Discobolus",
		"description": "The discus thrower after Myron.",
		"category":    "GREEK",
		"price":       420.00,
		"stockStatus": "IN_STOCK",
		"dimensions":  map[string]any{"height": 30, "width": 14, "depth": 12, "unit": "INCHES"},
		"weight":      map[string]any{"value": 22, "unit": "LBS"},
		"material":    map[string]any{"primary": "Bonded Marble"},
		"edition":     map[string]any{"isLimited": false, "runSize": 1, "availableQuantity": 1, "soldCount": 0},
		"images":      map[string]any{"thumbnail": "/uploads/products/grk-002-thumb.jpg", "main": []string{}},
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/products", createBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID.Hex()
}

func TestCreateProductEndpoint(t *testing.T) {
	t.Run("valid payload creates with mirror refs", func(t *testing.T) {
		r := newProductRouter(newMemStore())
		w := doJSON(t, r, http.MethodPost, "/api/products", createBody())

		require.Equal(t, http.StatusCreated, w.Code)
		var created models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "GRK-002", created.SKU)
		assert.Equal(t, "prod_GRK-002", created.PaymentProductRef)
	})

	t.Run("binding failure returns 400 with details", func(t *testing.T) {
		r := newProductRouter(newMemStore())
		body := createBody()
		body["category"] = "MODERN"
		w := doJSON(t, r, http.MethodPost, "/api/products", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "details")
	})

	t.Run("edition inconsistency returns 400", func(t *testing.T) {
		r := newProductRouter(newMemStore())
		body := createBody()
		body["edition"] = map[string]any{"isLimited": true, "runSize": 5, "availableQuantity": 2, "soldCount": 2}
		w := doJSON(t, r, http.MethodPost, "/api/products", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProductEndpoints(t *testing.T) {
	store := newMemStore()
	r := newProductRouter(store)
	id := seedProduct(t, r)

	t.Run("list returns seeded products", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/products?category=GREEK&minPrice=100", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var products []models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 1)
		assert.Equal(t, "Discobolus", products[0].Name)
	})

	t.Run("invalid price filter returns 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/products?minPrice=cheap", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/products/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sku":"GRK-002"`)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/products/"+bson.NewObjectID().Hex(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateProductEndpoint(t *testing.T) {
	store := newMemStore()
	r := newProductRouter(store)
	id := seedProduct(t, r)

	t.Run("partial update applies", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/products/"+id, map[string]any{"name": "Discobolus of Myron"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Discobolus of Myron")
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/products/"+bson.NewObjectID().Hex(), map[string]any{"name": "X"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteProductEndpoints(t *testing.T) {
	t.Run("soft delete stamps the record and keeps it", func(t *testing.T) {
		store := newMemStore()
		r := newProductRouter(store)
		id := seedProduct(t, r)

		w := doJSON(t, r, http.MethodDelete, "/api/products/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Product deleted successfully")

		kept := store.products[id]
		require.NotNil(t, kept)
		assert.Equal(t, models.StockDiscontinued, kept.StockStatus)
		assert.NotNil(t, kept.DeletedAt)
	})

	t.Run("hard delete removes the record", func(t *testing.T) {
		store := newMemStore()
		r := newProductRouter(store)
		id := seedProduct(t, r)

		w := doJSON(t, r, http.MethodDelete, "/api/products/"+id+"/hard", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Product permanently deleted")
		assert.Empty(t, store.products)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		r := newProductRouter(newMemStore())
		w := doJSON(t, r, http.MethodDelete, "/api/products/"+bson.NewObjectID().Hex(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
