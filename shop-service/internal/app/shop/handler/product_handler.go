package handler

import (
	"net/http"
	"strings"

	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler обрабатывает HTTP запросы каталога товаров
type ProductHandler struct {
	productService service.ProductServiceInterface
}

func NewProductHandler(productService service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct обрабатывает POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct обрабатывает GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetAllProducts обрабатывает GET /api/v1/products
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Products: products, Total: len(products)})
}

// SearchProducts обрабатывает GET /api/v1/products/search?name=...|category=...
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	name, hasName := c.GetQuery("name")
	category, hasCategory := c.GetQuery("category")

	var (
		products []entity.Product
		err      error
	)
	switch {
	case hasName && strings.TrimSpace(name) != "":
		products, err = h.productService.SearchByName(c.Request.Context(), name)
	case hasCategory && strings.TrimSpace(category) != "":
		products, err = h.productService.SearchByCategory(c.Request.Context(), category)
	default:
		respondBadRequest(c, "name or category query parameter is required")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Products: products, Total: len(products)})
}

// UpdateProduct обрабатывает PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product deleted successfully"})
}
