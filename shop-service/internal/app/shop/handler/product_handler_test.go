package handler

import (
	"net/http"
	"testing"

	"storefront/shop-service/internal/app/shop/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_CreateProduct_Validation(t *testing.T) {
	env := newTestEnv()
	price := 5.0
	negative := -1.0
	zeroCategory := int64(0)

	tests := []struct {
		name string
		req  entity.CreateProductRequest
		code int
	}{
		{"valid", entity.CreateProductRequest{Name: "Mug", Price: &price}, http.StatusCreated},
		{"zero category id", entity.CreateProductRequest{Name: "Mug", Price: &price, CategoryID: &zeroCategory}, http.StatusCreated},
		{"missing price", entity.CreateProductRequest{Name: "Mug"}, http.StatusBadRequest},
		{"negative price", entity.CreateProductRequest{Name: "Mug", Price: &negative}, http.StatusBadRequest},
		{"blank name", entity.CreateProductRequest{Name: " ", Price: &price}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/products", tt.req, "")
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestProductHandler_GetAllProducts_EmptyIsOK(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/v1/products", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[entity.ProductListResponse](t, w).Total)
}

func TestProductHandler_SearchProducts(t *testing.T) {
	// Arrange
	env := newTestEnv()
	w := env.do(t, http.MethodPost, "/api/v1/categories", entity.CreateCategoryRequest{Name: "Kitchen"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	category := decode[entity.CategoryResponse](t, w)

	price := 3.0
	w = env.do(t, http.MethodPost, "/api/v1/products", entity.CreateProductRequest{Name: "Coffee Mug", Price: &price, CategoryID: &category.ID}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/api/v1/products", entity.CreateProductRequest{Name: "Notebook", Price: &price}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name  string
		query string
		code  int
		total int
	}{
		{"by name", "?name=mug", http.StatusOK, 1},
		{"by category", "?category=KITCH", http.StatusOK, 1},
		{"no match", "?name=laptop", http.StatusOK, 0},
		{"no parameters", "", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			w := env.do(t, http.MethodGet, "/api/v1/products/search"+tt.query, nil, "")

			// Assert
			require.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.total, decode[entity.ProductListResponse](t, w).Total)
			}
		})
	}
}

func TestProductHandler_UpdateProduct_MovesCategory(t *testing.T) {
	// Arrange
	env := newTestEnv()
	for _, name := range []string{"Old", "New"} {
		w := env.do(t, http.MethodPost, "/api/v1/categories", entity.CreateCategoryRequest{Name: name}, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}

	price := 3.0
	oldID, newID := int64(1), int64(2)
	w := env.do(t, http.MethodPost, "/api/v1/products", entity.CreateProductRequest{Name: "Lamp", Price: &price, CategoryID: &oldID}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Act
	w = env.do(t, http.MethodPut, "/api/v1/products/1", entity.UpdateProductRequest{CategoryID: &newID}, "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, "/api/v1/categories/1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, "/api/v1/categories/2", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProductHandler_DeleteProduct_NotFound(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodDelete, "/api/v1/products/10", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
