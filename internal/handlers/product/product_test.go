package product

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(h *Handler, brandID gocql.UUID) *gin.Engine {
	r := gin.New()
	withBrand := func(c *gin.Context) {
		c.Set("brand_id", brandID)
	}
	g := r.Group("/api/v1/products")
	g.GET("/brand/:brandId", h.GetProductsByBrand)
	g.Use(withBrand)
	{
		g.POST("", h.CreateProduct)
		g.GET("", h.GetBrandProducts)
		g.GET("/search", h.SearchProducts)
		g.GET("/:id", h.GetProduct)
		g.PUT("/:id", h.UpdateProduct)
		g.DELETE("/:id", h.DeleteProduct)
		g.PUT("/:id/stock", h.UpdateStock)
	}
	return r
}

func seed(products *storetest.Products, brand gocql.UUID, name string, price float64, createdAt time.Time) models.Product {
	p := models.Product{
		ID:        gocql.TimeUUID(),
		Name:      name,
		Price:     price,
		Stock:     5,
		Category:  "men_kurta",
		Gender:    "male",
		Brand:     brand,
		CreatedAt: createdAt,
	}
	products.Add(p)
	return p
}

func TestCreateProduct(t *testing.T) {
	products := storetest.NewProducts()
	brand := gocql.TimeUUID()
	r := newTestRouter(NewHandler(products, nil), brand)

	body, _ := json.Marshal(map[string]interface{}{
		"name":     "Silk Sherwani",
		"price":    250.0,
		"stock":    4,
		"category": "men_sherwani",
		"gender":   "male",
		"colors":   []string{"maroon", "gold"},
		// attempt to plant someone else's brand id, must be overridden
		"brand": gocql.TimeUUID().String(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, brand, resp.Data.Brand)
	assert.NotEqual(t, gocql.UUID{}, resp.Data.ID)
}

func TestCreateProductValidation(t *testing.T) {
	products := storetest.NewProducts()
	r := newTestRouter(NewHandler(products, nil), gocql.TimeUUID())

	body, _ := json.Marshal(map[string]interface{}{
		"name":     "ab",
		"price":    0,
		"category": "hats",
		"gender":   "other",
		"colors":   []string{"neon_pink"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, field := range []string{"name", "price", "category", "gender", "colors"} {
		assert.Contains(t, resp.Errors, field)
	}
}

func TestGetProductScoping(t *testing.T) {
	products := storetest.NewProducts()
	brandA := gocql.TimeUUID()
	brandB := gocql.TimeUUID()
	mine := seed(products, brandA, "Mine", 100, time.Now())
	theirs := seed(products, brandB, "Theirs", 100, time.Now())

	r := newTestRouter(NewHandler(products, nil), brandA)

	get := func(id string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get(mine.ID.String()).Code)

	// someone else's product and a missing product are the same 404
	otherBrand := get(theirs.ID.String())
	missing := get(gocql.TimeUUID().String())
	assert.Equal(t, http.StatusNotFound, otherBrand.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, otherBrand.Body.String(), missing.Body.String())
}

func TestUpdateProductKeepsOwnership(t *testing.T) {
	products := storetest.NewProducts()
	brand := gocql.TimeUUID()
	p := seed(products, brand, "Old Name", 100, time.Now())

	r := newTestRouter(NewHandler(products, nil), brand)

	body, _ := json.Marshal(map[string]interface{}{
		"name":     "New Name",
		"price":    150.0,
		"stock":    5,
		"category": "men_kurta",
		"gender":   "male",
		"brand":    gocql.TimeUUID().String(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+p.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "New Name", resp.Data.Name)
	assert.Equal(t, brand, resp.Data.Brand)
	assert.Equal(t, p.ID, resp.Data.ID)
}

func TestUpdateStock(t *testing.T) {
	products := storetest.NewProducts()
	brand := gocql.TimeUUID()
	p := seed(products, brand, "Kurta", 100, time.Now())

	r := newTestRouter(NewHandler(products, nil), brand)

	putStock := func(stock int) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]int{"stock": stock})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+p.ID.String()+"/stock", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := putStock(42)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 42, products.Stock(p.ID))

	w = putStock(-1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 42, products.Stock(p.ID))
}

func TestSearchFallbackScan(t *testing.T) {
	products := storetest.NewProducts()
	brandA := gocql.TimeUUID()
	brandB := gocql.TimeUUID()
	seed(products, brandA, "Embroidered Kurta", 80, time.Now())
	seed(products, brandA, "Silk Saree", 200, time.Now())
	seed(products, brandB, "Embroidered Kurta Deluxe", 120, time.Now())

	// nil index: the handler must scan the catalog instead
	r := newTestRouter(NewHandler(products, nil), brandA)

	search := func(query string) []models.Product {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/search?"+query, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []models.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Data
	}

	results := search("query=kurta")
	require.Len(t, results, 1)
	assert.Equal(t, "Embroidered Kurta", results[0].Name)

	results = search("minPrice=100&maxPrice=300")
	require.Len(t, results, 1)
	assert.Equal(t, "Silk Saree", results[0].Name)

	assert.Len(t, search(""), 2)
	assert.Empty(t, search("query=lehenga"))
}

func TestDeleteProduct(t *testing.T) {
	products := storetest.NewProducts()
	brandA := gocql.TimeUUID()
	brandB := gocql.TimeUUID()
	mine := seed(products, brandA, "Mine", 100, time.Now())
	theirs := seed(products, brandB, "Theirs", 100, time.Now())

	r := newTestRouter(NewHandler(products, nil), brandA)

	del := func(id string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+id, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNotFound, del(theirs.ID.String()))
	assert.Equal(t, http.StatusOK, del(mine.ID.String()))
	assert.Equal(t, http.StatusNotFound, del(mine.ID.String()))
}

func TestGetProductsByBrandPublic(t *testing.T) {
	products := storetest.NewProducts()
	brand := gocql.TimeUUID()
	older := seed(products, brand, "Older", 100, time.Now().Add(-time.Hour))
	newer := seed(products, brand, "Newer", 100, time.Now())
	seed(products, gocql.TimeUUID(), "Other", 100, time.Now())

	// no auth context on this route
	r := newTestRouter(NewHandler(products, nil), gocql.UUID{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/brand/"+brand.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int              `json:"count"`
		Data  []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, newer.ID, resp.Data[0].ID)
	assert.Equal(t, older.ID, resp.Data[1].ID)
}
