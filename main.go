package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/config"
	"github.com/etherdox/ethersms/handlers"
	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/settlement"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := config.InitLogger(cfg)
	defer logger.Sync()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	router := setupRouter(cfg, db)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting ethersms API server", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
	router.GET("/health", health)

	engine := settlement.NewEngine(db)
	authHandler := handlers.NewAuthHandler(db, cfg, engine)
	userHandler := handlers.NewUserHandler(db)
	orderHandler := handlers.NewOrderHandler(db, cfg, engine)
	paymentHandler := handlers.NewPaymentHandler(db, engine)
	kycHandler := handlers.NewKycHandler(db, engine)
	catalogHandler := handlers.NewCatalogHandler(db, engine)
	chatHandler := handlers.NewChatHandler(db)
	adminHandler := handlers.NewAdminHandler(db, engine)

	api := router.Group("/api")
	api.GET("/health", health)

	// Public endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/services", catalogHandler.Services)
	api.GET("/services/:id", catalogHandler.Service)
	api.GET("/countries", catalogHandler.Countries)
	api.GET("/countries/:id", catalogHandler.Country)
	api.GET("/products", catalogHandler.Products)
	api.GET("/products/:id", catalogHandler.Product)

	// Authenticated endpoints
	authed := api.Group("")
	authed.Use(middleware.JwtAuthMiddleware(cfg))
	{
		authed.GET("/user/profile", userHandler.Profile)
		authed.GET("/user/activities", userHandler.Activities)
		authed.GET("/user/referrals", userHandler.Referrals)
		authed.GET("/user/products", userHandler.Products)

		authed.GET("/phone-numbers", catalogHandler.PhoneNumbers)

		authed.POST("/orders", orderHandler.Create)
		authed.GET("/orders", orderHandler.List)
		authed.GET("/orders/:id", orderHandler.Get)

		authed.POST("/payments", paymentHandler.Create)
		authed.GET("/payments", paymentHandler.List)

		authed.POST("/kyc", kycHandler.Create)
		authed.GET("/kyc", kycHandler.Get)

		authed.POST("/products", catalogHandler.CreateProduct)

		authed.POST("/ai-chat", chatHandler.Send)
		authed.GET("/ai-chat", chatHandler.History)

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)

			admin.POST("/phone-numbers", adminHandler.CreatePhoneNumber)
			admin.GET("/phone-numbers", adminHandler.ListPhoneNumbers)
			admin.PATCH("/phone-numbers/:id", adminHandler.UpdatePhoneNumber)
			admin.DELETE("/phone-numbers/:id", adminHandler.DeletePhoneNumber)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.PATCH("/orders/:id", adminHandler.UpdateOrder)

			admin.GET("/payments", adminHandler.ListPayments)
			admin.PATCH("/payments/:id", adminHandler.UpdatePayment)

			admin.GET("/kyc", adminHandler.ListKyc)
			admin.PATCH("/kyc/:id", adminHandler.UpdateKyc)

			admin.GET("/settings", adminHandler.ListSettings)
			admin.PATCH("/settings", adminHandler.UpdateSettings)

			admin.POST("/broadcast", adminHandler.Broadcast)

			admin.GET("/products", adminHandler.ListPendingProducts)
			admin.PATCH("/products/:id", adminHandler.UpdateProduct)

			admin.POST("/services", adminHandler.CreateService)
			admin.GET("/services", adminHandler.ListServices)
			admin.PATCH("/services/:id", adminHandler.UpdateService)

			admin.POST("/countries", adminHandler.CreateCountry)
			admin.GET("/countries", adminHandler.ListCountries)
			admin.PATCH("/countries/:id", adminHandler.UpdateCountry)
		}
	}

	return router
}
