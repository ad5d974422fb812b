// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopvelvet/backend/internal/config"
	"github.com/shopvelvet/backend/internal/handlers"
	"github.com/shopvelvet/backend/internal/middleware"
	"github.com/shopvelvet/backend/internal/services"
	"github.com/shopvelvet/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	registry := services.NewTargetRegistry()

	authService := services.NewAuthService(db, cfg)
	customerService := services.NewCustomerService(db)
	addressService := services.NewAddressService(db)
	catalogService := services.NewCatalogService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)
	tagService := services.NewTagService(db, registry)
	likeService := services.NewLikeService(db, registry)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	addressHandler := handlers.NewAddressHandler(addressService)
	collectionHandler := handlers.NewCollectionHandler(catalogService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService, customerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	tagHandler := handlers.NewTagHandler(tagService)
	likeHandler := handlers.NewLikeHandler(likeService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit(cfg.RateLimit))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Customer routes
		customers := v1.Group("/customers")
		customers.Use(middleware.AuthRequired())
		{
			customers.GET("", customerHandler.ListCustomers)
			customers.POST("", middleware.StaffRequired(), customerHandler.CreateCustomer)
			customers.GET("/me", customerHandler.CurrentCustomer)
			customers.PATCH("/me", customerHandler.UpdateCurrentCustomer)
			customers.GET("/:id", customerHandler.GetCustomer)
		}

		// Address routes
		addresses := v1.Group("/addresses")
		addresses.Use(middleware.AuthRequired())
		{
			addresses.GET("", addressHandler.ListAddresses)
			addresses.POST("", addressHandler.CreateAddress)
			addresses.GET("/:id", addressHandler.GetAddress)
			addresses.PUT("/:id", addressHandler.UpdateAddress)
			addresses.DELETE("/:id", addressHandler.DeleteAddress)
		}

		// Collection routes (public reads, staff writes)
		collections := v1.Group("/collections")
		collections.Use(middleware.OptionalAuth(), middleware.StaffOrReadOnly())
		{
			collections.GET("", collectionHandler.ListCollections)
			collections.GET("/:id", collectionHandler.GetCollection)
			collections.POST("", collectionHandler.CreateCollection)
			collections.PUT("/:id", collectionHandler.UpdateCollection)
			collections.DELETE("/:id", collectionHandler.DeleteCollection)
		}

		// Product routes (public reads, staff writes)
		products := v1.Group("/products")
		products.Use(middleware.OptionalAuth(), middleware.StaffOrReadOnly())
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Tag routes (public reads, staff writes)
		tags := v1.Group("/tags")
		tags.Use(middleware.OptionalAuth(), middleware.StaffOrReadOnly())
		{
			tags.GET("", tagHandler.ListTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
			tags.GET("/:id/items", tagHandler.ListTaggedItems)
			tags.POST("/:id/items", tagHandler.AttachTag)
		}

		// Cart routes: anonymous carts are created and used without a
		// token, so most endpoints take an optional principal.
		carts := v1.Group("/carts")
		{
			carts.POST("", middleware.OptionalAuth(), cartHandler.CreateCart)
			carts.GET("/mine", middleware.AuthRequired(), cartHandler.GetOwnCart)
			carts.GET("/:id", middleware.OptionalAuth(), cartHandler.GetCart)
			carts.POST("/:id/items", middleware.OptionalAuth(), cartHandler.AddItem)
			carts.PATCH("/:id/items/:itemID", middleware.OptionalAuth(), cartHandler.UpdateItem)
			carts.DELETE("/:id/items/:itemID", middleware.OptionalAuth(), cartHandler.RemoveItem)
			carts.POST("/:id/merge", middleware.AuthRequired(), cartHandler.MergeCarts)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PATCH("/:id", middleware.StaffRequired(), orderHandler.UpdateOrderStatus)
		}

		// Like routes
		likes := v1.Group("/likes")
		likes.Use(middleware.AuthRequired())
		{
			likes.POST("", likeHandler.Like)
			likes.GET("", likeHandler.ListLikes)
			likes.DELETE("/:id", likeHandler.Unlike)
		}
	}

	return r
}
