package routes

import (
	"flashfit_back_end/internal/handlers/account"
	"flashfit_back_end/internal/handlers/order"
	"flashfit_back_end/internal/handlers/product"
	"flashfit_back_end/internal/handlers/upload"
	"flashfit_back_end/internal/middleware"
	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything RegisterRoutes needs. Built once in main.
type Handlers struct {
	Customer *account.Handler
	Rider    *account.Handler
	Brand    *account.Handler
	Products *product.Handler
	Orders   *order.Handler
	Upload   *upload.Handler
	Accounts store.AccountStore
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	auth := middleware.AuthRequired(h.Accounts)
	brandOnly := middleware.RequireRoles(models.RoleBrand)

	registerAccountRoutes(r.Group("/api/customer"), h.Customer, auth)
	registerAccountRoutes(r.Group("/api/rider"), h.Rider, auth)

	brand := r.Group("/api/brand")
	registerAccountRoutes(brand, h.Brand, auth)
	brand.GET("/all", h.Brand.ListBrands)

	products := r.Group("/api/v1/products")
	products.GET("/brand/:brandId", h.Products.GetProductsByBrand)
	products.Use(auth, brandOnly)
	{
		products.POST("", h.Products.CreateProduct)
		products.GET("", h.Products.GetBrandProducts)
		products.GET("/search", h.Products.SearchProducts)
		products.GET("/:id", h.Products.GetProduct)
		products.PUT("/:id", h.Products.UpdateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)
		products.PUT("/:id/stock", h.Products.UpdateStock)
	}

	r.POST("/api/v1/upload", auth, brandOnly, h.Upload.UploadImage)

	orders := r.Group("/api/orders")
	{
		// Checkout and customer history are public; the mobile client sends
		// no token for them.
		orders.POST("", h.Orders.CreateOrder)
		orders.GET("/customer/:customerId", h.Orders.GetCustomerOrders)

		orders.GET("", auth, brandOnly, h.Orders.GetOrders)
		orders.PUT("/:id/status", auth, brandOnly, h.Orders.UpdateOrderStatus)
	}
}

func registerAccountRoutes(g *gin.RouterGroup, h *account.Handler, auth gin.HandlerFunc) {
	g.POST("/signup", h.Signup)
	g.POST("/verify-email", h.VerifyEmail)
	g.POST("/login", h.Login)
	g.POST("/resend-otp", h.ResendOTP)
	g.GET("/profile/:id", auth, h.GetProfile)
	g.PUT("/profile/:id", auth, h.UpdateProfile)
}
