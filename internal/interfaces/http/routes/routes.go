// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group onto the given router group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	collectionHandler := handlers.NewCollectionHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, cfg)
	customerHandler := handlers.NewCustomerHandler(db, cfg)

	// Authentication (public)
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Catalog reads (public)
	rg.GET("/products", productHandler.GetProducts)
	rg.GET("/products/:id", productHandler.GetProduct)
	rg.GET("/collections", collectionHandler.GetCollections)
	rg.GET("/collections/:id", collectionHandler.GetCollection)

	// Catalog writes (authenticated)
	catalogAdmin := rg.Group("")
	catalogAdmin.Use(middleware.AuthMiddleware(cfg))
	{
		catalogAdmin.POST("/products", productHandler.CreateProduct)
		catalogAdmin.PATCH("/products/:id", productHandler.UpdateProduct)
		catalogAdmin.DELETE("/products/:id", productHandler.DeleteProduct)
	}

	// Carts are anonymous: a cart id is the only credential.
	carts := rg.Group("/carts")
	{
		carts.POST("", cartHandler.CreateCart)
		carts.GET("/:id", cartHandler.GetCart)
		carts.DELETE("/:id", cartHandler.DeleteCart)
		carts.POST("/:id/items", cartHandler.AddToCart)
	}

	// Customer records (authenticated)
	customers := rg.Group("/customers")
	customers.Use(middleware.AuthMiddleware(cfg))
	{
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("", customerHandler.GetCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.GET("/:id/orders", customerHandler.GetCustomerOrders)
	}
}
