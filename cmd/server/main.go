package main

import (
	"log"
	"os"

	"flashfit_back_end/internal/cache"
	"flashfit_back_end/internal/config"
	"flashfit_back_end/internal/database"
	"flashfit_back_end/internal/handlers/account"
	"flashfit_back_end/internal/handlers/order"
	"flashfit_back_end/internal/handlers/product"
	"flashfit_back_end/internal/handlers/upload"
	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/routes"
	"flashfit_back_end/internal/services"
	"flashfit_back_end/internal/store/scylla"
	"flashfit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	usersSession, err := database.GetUsersSession()
	if err != nil {
		log.Fatal("❌ Users keyspace unavailable:", err)
	}
	productsSession, err := database.GetProductsSession()
	if err != nil {
		log.Fatal("❌ Products keyspace unavailable:", err)
	}
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		log.Fatal("❌ Orders keyspace unavailable:", err)
	}

	accounts := scylla.NewAccountStore(usersSession)
	products := scylla.NewProductStore(productsSession)
	orders := scylla.NewOrderStore(ordersSession)

	codes := cache.NewRedisCodeStore(database.Redis)
	index := services.NewProductIndex(database.Elastic)
	images := services.NewImageStorage(database.MinIO,
		os.Getenv("MINIO_BUCKET"),
		os.Getenv("MINIO_ENDPOINT"),
		os.Getenv("MINIO_USE_SSL") == "true")

	mailer := utils.SMTPMailer{}

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Handlers{
		Customer: account.NewHandler(models.RoleCustomer, accounts, codes, mailer),
		Rider:    account.NewHandler(models.RoleRider, accounts, codes, mailer),
		Brand:    account.NewHandler(models.RoleBrand, accounts, codes, mailer),
		Products: product.NewHandler(products, index),
		Orders:   order.NewHandler(orders, products),
		Upload:   upload.NewHandler(images),
		Accounts: accounts,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 FlashFit server listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}
