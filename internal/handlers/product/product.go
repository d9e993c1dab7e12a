// Package product implements the brand-scoped catalog: CRUD, stock
// management and search. Every protected operation is pre-filtered by the
// calling brand's id, so a brand can never observe another brand's catalog —
// and "not found" is indistinguishable from "not yours".
package product

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/services"
	"flashfit_back_end/internal/store"
	"flashfit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

type Handler struct {
	products store.ProductStore
	index    *services.ProductIndex // may be nil, search then falls back to a store scan
}

func NewHandler(products store.ProductStore, index *services.ProductIndex) *Handler {
	return &Handler{products: products, index: index}
}

func brandID(c *gin.Context) gocql.UUID {
	return c.MustGet("brand_id").(gocql.UUID)
}

// CreateProduct handles POST /api/v1/products. Ownership comes from the
// token, not the body; the brand field is immutable afterwards.
func (h *Handler) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	p.Brand = brandID(c)
	if errs := utils.ValidateProduct(&p); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
		return
	}

	p.ID = gocql.TimeUUID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := h.products.Insert(c.Request.Context(), &p); err != nil {
		log.Printf("❌ Error creating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	go h.index.Index(p)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

// GetBrandProducts handles GET /api/v1/products — the calling brand's own
// catalog, newest first.
func (h *Handler) GetBrandProducts(c *gin.Context) {
	products, err := h.products.ListByBrand(c.Request.Context(), brandID(c))
	if err != nil {
		log.Printf("❌ Error listing products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
}

// GetProduct handles GET /api/v1/products/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}

	p, err := h.products.GetForBrand(c.Request.Context(), id, brandID(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// UpdateProduct handles PUT /api/v1/products/:id. The body carries the full
// product; id, brand and timestamps are taken from the stored record.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}

	existing, err := h.products.GetForBrand(c.Request.Context(), id, brandID(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	p.ID = existing.ID
	p.Brand = existing.Brand
	p.CreatedAt = existing.CreatedAt
	if errs := utils.ValidateProduct(&p); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
		return
	}

	if err := h.products.Update(c.Request.Context(), &p); err != nil {
		log.Printf("❌ Error updating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	go h.index.Index(p)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// DeleteProduct handles DELETE /api/v1/products/:id.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}

	err = h.products.Delete(c.Request.Context(), id, brandID(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Error deleting product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	go h.index.Remove(id.String())

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

type updateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// UpdateStock handles PUT /api/v1/products/:id/stock — an absolute restock
// by the owning brand, distinct from the order-side decrement.
func (h *Handler) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Stock quantity is required"})
		return
	}
	if *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Stock quantity must be a non-negative number"})
		return
	}

	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}

	p, err := h.products.SetStock(c.Request.Context(), id, brandID(c), *req.Stock)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Error updating stock: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	go h.index.Index(*p)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// SearchProducts handles GET /api/v1/products/search. Elasticsearch first;
// when it is unavailable or empty the handler scans the brand's catalog and
// filters in memory.
func (h *Handler) SearchProducts(c *gin.Context) {
	params := services.SearchParams{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
	}
	if v := c.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinPrice = &f
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxPrice = &f
		}
	}

	caller := brandID(c)

	if results, err := h.index.Search(caller.String(), params); err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "data": results})
		return
	}

	products, err := h.products.ListByBrand(c.Request.Context(), caller)
	if err != nil {
		log.Printf("❌ Error searching products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchesSearch(p, params) {
			continue
		}
		filtered = append(filtered, p)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(filtered), "data": filtered})
}

func matchesSearch(p models.Product, params services.SearchParams) bool {
	if params.Query != "" {
		q := strings.ToLower(params.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if params.Category != "" && p.Category != params.Category {
		return false
	}
	if params.Gender != "" && p.Gender != params.Gender {
		return false
	}
	if params.MinPrice != nil && p.Price < *params.MinPrice {
		return false
	}
	if params.MaxPrice != nil && p.Price > *params.MaxPrice {
		return false
	}
	return true
}

// GetProductsByBrand handles GET /api/v1/products/brand/:brandId — the
// public storefront view of one brand's catalog.
func (h *Handler) GetProductsByBrand(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("brandId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid brand id"})
		return
	}

	products, err := h.products.ListByBrand(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Error listing brand products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
}
