package main

import (
	"log"
	"net/http"

	"github.com/qanoot-iftekhar/mywebsite/config"
	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/handlers"
	"github.com/qanoot-iftekhar/mywebsite/services"
	"github.com/qanoot-iftekhar/mywebsite/sessions"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	// Image uploads are optional; the store runs without them
	if err := services.InitializeCloudinary(config.AppConfig.CloudinaryURL); err != nil {
		log.Printf("Cloudinary not configured, image uploads disabled: %v", err)
	}

	services.InitializeMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPassword,
		config.AppConfig.EmailFrom,
	)

	handlers.SessionStore = sessions.NewPostgresStore(db.DB)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Footwear Store server is running",
		})
	})

	// Storefront routes the old frontend calls directly. Work for
	// guests (session cookie) and logged-in users alike.
	store := router.Group("/")
	store.Use(handlers.OptionalAuthMiddleware())
	{
		store.GET("/cart", handlers.GetCart)
		store.POST("/add-to-cart/:id", handlers.AddToCart)
		store.PATCH("/cart", handlers.UpdateCartItem)
		store.DELETE("/cart", handlers.RemoveFromCart)

		store.GET("/checkout", handlers.GetCheckout)
		store.POST("/checkout", handlers.Checkout)
		store.GET("/order-success/:id", handlers.OrderSuccess)
	}

	// OTP login
	router.POST("/auth/request-otp", handlers.RequestOTP)
	router.POST("/auth/verify-otp", handlers.OptionalAuthMiddleware(), handlers.VerifyOTP)

	// Wishlist toggle (legacy path)
	router.POST("/wishlist/toggle/:id", handlers.AuthMiddleware(), handlers.ToggleWishlist)

	// JSON API
	api := router.Group("/api")
	{
		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.OptionalAuthMiddleware(), handlers.RegisterUser)
			auth.POST("/login", handlers.OptionalAuthMiddleware(), handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/profile", handlers.AuthMiddleware(), handlers.GetProfile)
			auth.PUT("/profile", handlers.AuthMiddleware(), handlers.UpdateProfile)
		}

		// Catalog (wishlist flag on detail needs the optional identity)
		api.GET("/categories", handlers.GetCategories)
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id", handlers.OptionalAuthMiddleware(), handlers.GetProduct)
		api.GET("/products/:id/reviews", handlers.GetProductReviews)
		api.POST("/products/:id/reviews", handlers.AuthMiddleware(), handlers.CreateReview)

		// Cart, same semantics as the storefront paths
		cart := api.Group("/cart")
		cart.Use(handlers.OptionalAuthMiddleware())
		{
			cart.GET("", handlers.GetCart)
			cart.POST("/:id", handlers.AddToCart)
			cart.PATCH("", handlers.UpdateCartItem)
			cart.DELETE("", handlers.RemoveFromCart)
		}

		// Order history (protected)
		orders := api.Group("/orders")
		orders.Use(handlers.AuthMiddleware())
		{
			orders.GET("", handlers.GetOrders)
			orders.GET("/:id", handlers.GetOrder)
		}

		// Address book (protected)
		addresses := api.Group("/addresses")
		addresses.Use(handlers.AuthMiddleware())
		{
			addresses.GET("", handlers.GetAddresses)
			addresses.POST("", handlers.CreateAddress)
			addresses.DELETE("/:id", handlers.DeleteAddress)
		}

		api.GET("/wishlist", handlers.AuthMiddleware(), handlers.GetWishlist)
		api.POST("/newsletter", handlers.SubscribeNewsletter)

		// Admin routes (protected with admin middleware)
		admin := api.Group("/admin")
		admin.Use(handlers.AuthMiddleware(), handlers.AdminMiddleware())
		{
			admin.POST("/products", handlers.CreateProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)
			admin.POST("/products/:id/images", handlers.UploadProductImage)
			admin.POST("/products/:id/variants", handlers.CreateVariant)
			admin.PATCH("/variants/:id/stock", handlers.UpdateVariantStock)

			admin.GET("/orders", handlers.GetAllOrders)
			admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus)
		}
	}

	// Start server
	log.Printf("Starting Footwear Store server on 0.0.0.0:%s", config.AppConfig.ServerPort)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+config.AppConfig.ServerPort, c.Handler(router)))
}
