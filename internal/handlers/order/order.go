// Package order implements the order lifecycle: checkout, brand and
// customer order lists, and status transitions.
package order

import (
	"errors"
	"log"
	"net/http"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"
	"flashfit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

type Handler struct {
	orders   store.OrderStore
	products store.ProductStore
}

func NewHandler(orders store.OrderStore, products store.ProductStore) *Handler {
	return &Handler{orders: orders, products: products}
}

type createOrderRequest struct {
	CustomerInfo  models.CustomerInfo    `json:"customerInfo"`
	Product       models.ProductSnapshot `json:"product"`
	PaymentMethod models.PaymentMethod   `json:"paymentMethod"`
	CustomerID    gocql.UUID             `json:"customerId"`
}

// CreateOrder handles POST /api/orders. The total is computed once from the
// submitted snapshot and never recomputed; the stock decrement happens after
// the order is persisted and its failure does not undo the order.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product details are incomplete."})
		return
	}

	if errs := utils.ValidateOrder(req.CustomerInfo, req.Product, req.PaymentMethod, req.CustomerID); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product details are incomplete.", "errors": errs})
		return
	}

	now := time.Now()
	ord := models.Order{
		ID:            gocql.TimeUUID(),
		CustomerInfo:  req.CustomerInfo,
		CustomerID:    req.CustomerID,
		Product:       req.Product,
		TotalPrice:    req.Product.Price * float64(req.Product.Quantity),
		PaymentMethod: req.PaymentMethod,
		OrderStatus:   models.OrderPending, // always Pending at creation, whatever the caller sent
		OrderDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.orders.Insert(c.Request.Context(), &ord); err != nil {
		log.Printf("❌ Error creating order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	// Stock side effect. An order is never rolled back here: a missing
	// product or an insufficient stock only leaves a trace in the logs.
	res, err := h.products.DecrementStock(c.Request.Context(), req.Product.ProductID, req.Product.Quantity)
	switch {
	case err != nil:
		log.Printf("❌ Stock decrement failed for product %s: %v", req.Product.ProductID, err)
	case !res.Found:
		log.Printf("⚠️ Order %s references unknown product %s, stock not updated", ord.ID, req.Product.ProductID)
	case !res.Sufficient:
		log.Printf("⚠️ Insufficient stock for product %s (have %d, ordered %d). Order placed but stock not updated.",
			req.Product.ProductID, res.NewStock, req.Product.Quantity)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": ord})
}

// GetOrders handles GET /api/orders for an authenticated brand. The brand
// sees exactly the orders whose product still resolves to its own catalog;
// orders whose product was deleted or belongs to someone else are filtered
// out here, not in the database.
func (h *Handler) GetOrders(c *gin.Context) {
	brandID := c.MustGet("brand_id").(gocql.UUID)

	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ Error fetching orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, ord := range orders {
		p, err := h.products.GetByID(c.Request.Context(), ord.Product.ProductID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("❌ Error resolving product %s: %v", ord.Product.ProductID, err)
			}
			continue
		}
		if p.Brand == brandID {
			filtered = append(filtered, ord)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(filtered), "data": filtered})
}

// GetCustomerOrders handles GET /api/orders/customer/:customerId. Display
// fields come from the frozen snapshot; only a missing snapshot image is
// backfilled from the live product.
func (h *Handler) GetCustomerOrders(c *gin.Context) {
	customerID, err := gocql.ParseUUID(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Customer ID is required"})
		return
	}

	orders, err := h.orders.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		log.Printf("❌ Error fetching customer orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching orders"})
		return
	}

	for i := range orders {
		if orders[i].Product.Image != "" {
			continue
		}
		p, err := h.products.GetByID(c.Request.Context(), orders[i].Product.ProductID)
		if err == nil && len(p.Images) > 0 {
			orders[i].Product.Image = p.Images[0]
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PUT /api/orders/:id/status. Any of the five
// statuses may follow any other; only enum membership is checked, and only
// the status field is written.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid status. Must be one of: Pending, Processing, Shipped, Delivered, Cancelled",
		})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	ord, err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Error updating order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": ord})
}
