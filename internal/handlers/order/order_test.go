package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
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
	r.POST("/api/orders", h.CreateOrder)
	r.GET("/api/orders/customer/:customerId", h.GetCustomerOrders)
	withBrand := func(c *gin.Context) {
		c.Set("brand_id", brandID)
	}
	r.GET("/api/orders", withBrand, h.GetOrders)
	r.PUT("/api/orders/:id/status", withBrand, h.UpdateOrderStatus)
	return r
}

func seedProduct(products *storetest.Products, brand gocql.UUID, stock int) models.Product {
	p := models.Product{
		ID:        gocql.TimeUUID(),
		Name:      "Embroidered Kurta",
		Price:     100,
		Stock:     stock,
		Category:  "men_kurta",
		Gender:    "male",
		Brand:     brand,
		Images:    []string{"http://cdn.local/kurta.jpg"},
		CreatedAt: time.Now(),
	}
	products.Add(p)
	return p
}

func checkoutBody(productID, customerID gocql.UUID, qty int) []byte {
	body := map[string]interface{}{
		"customerInfo": map[string]string{
			"fullName":    "Ali Raza",
			"address":     "12 Mall Road, Lahore",
			"phoneNumber": "+92-300-1234567",
		},
		"product": map[string]interface{}{
			"productId": productID.String(),
			"name":      "Embroidered Kurta",
			"price":     100,
			"quantity":  qty,
		},
		"paymentMethod": "Cash on Delivery",
		"customerId":    customerID.String(),
		// sent by older app builds, must be ignored
		"orderStatus": "Shipped",
	}
	b, _ := json.Marshal(body)
	return b
}

func TestCreateOrder(t *testing.T) {
	products := storetest.NewProducts()
	orders := storetest.NewOrders()
	brand := gocql.TimeUUID()
	p := seedProduct(products, brand, 10)
	customer := gocql.TimeUUID()

	r := newTestRouter(NewHandler(orders, products), brand)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(checkoutBody(p.ID, customer, 3)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 300.0, resp.Data.TotalPrice)
	assert.Equal(t, models.OrderPending, resp.Data.OrderStatus)
	assert.Equal(t, customer, resp.Data.CustomerID)

	assert.Equal(t, 7, products.Stock(p.ID))
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	products := storetest.NewProducts()
	orders := storetest.NewOrders()
	brand := gocql.TimeUUID()
	p := seedProduct(products, brand, 2)

	r := newTestRouter(NewHandler(orders, products), brand)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(checkoutBody(p.ID, gocql.TimeUUID(), 5)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// The order goes through even when stock cannot cover it.
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, products.Stock(p.ID))

	all, err := orders.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateOrderValidation(t *testing.T) {
	products := storetest.NewProducts()
	orders := storetest.NewOrders()
	r := newTestRouter(NewHandler(orders, products), gocql.TimeUUID())

	body, _ := json.Marshal(map[string]interface{}{
		"customerInfo": map[string]string{"fullName": "Ali Raza"},
		"product":      map[string]interface{}{"quantity": 0},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "customerInfo.address")
	assert.Contains(t, resp.Errors, "product.quantity")
	assert.Contains(t, resp.Errors, "paymentMethod")

	all, err := orders.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetOrdersBrandScoping(t *testing.T) {
	products := storetest.NewProducts()
	orders := storetest.NewOrders()
	brandA := gocql.TimeUUID()
	brandB := gocql.TimeUUID()
	mine := seedProduct(products, brandA, 10)
	theirs := seedProduct(products, brandB, 10)

	addOrder := func(p models.Product) gocql.UUID {
		id := gocql.TimeUUID()
		orders.Add(models.Order{
			ID:          id,
			CustomerID:  gocql.TimeUUID(),
			Product:     models.ProductSnapshot{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1},
			OrderStatus: models.OrderPending,
			CreatedAt:   time.Now(),
		})
		return id
	}

	myOrder := addOrder(mine)
	addOrder(theirs)
	// order whose product no longer exists
	orders.Add(models.Order{
		ID:        gocql.TimeUUID(),
		Product:   models.ProductSnapshot{ProductID: gocql.TimeUUID(), Quantity: 1},
		CreatedAt: time.Now(),
	})

	r := newTestRouter(NewHandler(orders, products), brandA)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int            `json:"count"`
		Data  []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, myOrder, resp.Data[0].ID)
}

func TestGetCustomerOrders(t *testing.T) {
	products := storetest.NewProducts()
	orders := storetest.NewOrders()
	brand := gocql.TimeUUID()
	p := seedProduct(products, brand, 10)
	customer := gocql.TimeUUID()

	older := models.Order{
		ID:         gocql.TimeUUID(),
		CustomerID: customer,
		Product:    models.ProductSnapshot{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1},
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	newer := models.Order{
		ID:         gocql.TimeUUID(),
		CustomerID: customer,
		Product:    models.ProductSnapshot{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 2, Image: "http://cdn.local/frozen.jpg"},
		CreatedAt:  time.Now(),
	}
	orders.Add(older)
	orders.Add(newer)

	r := newTestRouter(NewHandler(orders, products), brand)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/customer/"+customer.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)

	// newest first
	assert.Equal(t, newer.ID, resp.Data[0].ID)
	assert.Equal(t, older.ID, resp.Data[1].ID)

	// missing snapshot image is backfilled from the live product, an
	// existing one is left alone
	assert.Equal(t, "http://cdn.local/frozen.jpg", resp.Data[0].Product.Image)
	assert.Equal(t, "http://cdn.local/kurta.jpg", resp.Data[1].Product.Image)
}

func TestGetCustomerOrdersBadID(t *testing.T) {
	r := newTestRouter(NewHandler(storetest.NewOrders(), storetest.NewProducts()), gocql.TimeUUID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/customer/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	products := storetest.NewProducts()
	orders := storetest.NewOrders()
	ord := models.Order{ID: gocql.TimeUUID(), OrderStatus: models.OrderPending, CreatedAt: time.Now()}
	orders.Add(ord)

	r := newTestRouter(NewHandler(orders, products), gocql.TimeUUID())

	putStatus := func(id, status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"status": status})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+id+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := putStatus(ord.ID.String(), "Shipped")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderShipped, resp.Data.OrderStatus)

	// any status may follow any other, including going backwards
	w = putStatus(ord.ID.String(), "Pending")
	assert.Equal(t, http.StatusOK, w.Code)

	w = putStatus(ord.ID.String(), "OnTheWay")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status")

	w = putStatus(gocql.TimeUUID().String(), "Shipped")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = putStatus("not-a-uuid", "Shipped")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConcurrentDecrementNeverOversells(t *testing.T) {
	products := storetest.NewProducts()
	brand := gocql.TimeUUID()
	p := seedProduct(products, brand, 10)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := products.DecrementStock(context.Background(), p.ID, 1)
			if err != nil {
				panic(fmt.Sprintf("decrement: %v", err))
			}
			if res.Sufficient {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, products.Stock(p.ID))
}
