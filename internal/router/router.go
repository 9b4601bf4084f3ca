// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/handlers"
	"github.com/vendora/vendora-backend/internal/middleware"
	"github.com/vendora/vendora-backend/internal/services"
	"github.com/vendora/vendora-backend/internal/store"
	"github.com/vendora/vendora-backend/internal/utils"
)

func Initialize(st store.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(st)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(st, cfg)
	catalogService := services.NewCatalogService(st, cfg, notificationService)
	purchaseService := services.NewPurchaseService(st, cfg, notificationService)
	reviewService := services.NewReviewService(st)
	earningsService := services.NewEarningsService(st, cfg, notificationService)
	paymentService := services.NewPaymentService(st, cfg)
	adminService := services.NewAdminService(st, cfg, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService, purchaseService, reviewService, storageService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	earningsHandler := handlers.NewEarningsHandler(earningsService)
	adminHandler := handlers.NewAdminHandler(adminService, catalogService, earningsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditTrail(st))

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
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product catalog, purchases and reviews
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", productHandler.GetReviews)
			products.GET("/:id/reviews/:reviewerId", productHandler.GetReview)
			products.GET("/:id/purchased", middleware.OptionalAuth(), productHandler.CheckPurchased)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.GET("/mine", productHandler.GetMyProducts)
				protected.POST("/upload-asset", middleware.UploadRateLimit(), productHandler.UploadAsset)
				protected.POST("/:id/purchase", middleware.CheckoutRateLimit(), productHandler.PurchaseProduct)
				protected.GET("/:id/purchase", productHandler.GetPurchase)
				protected.GET("/:id/download", productHandler.DownloadProduct)
				protected.POST("/:id/reviews", productHandler.AddReview)
			}
		}

		// Purchase history
		purchases := v1.Group("/purchases")
		purchases.Use(middleware.AuthRequired())
		{
			purchases.GET("", productHandler.GetMyPurchases)
		}

		// Notifications
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.GetNotifications)
		}

		// Platform fee info (public)
		platform := v1.Group("/platform")
		{
			platform.GET("/fee-rate", earningsHandler.GetFeeRate)
			platform.GET("/fee-quote", earningsHandler.QuoteFee)
		}

		// Wallet routes
		wallet := v1.Group("/wallet")
		wallet.Use(middleware.AuthRequired())
		{
			wallet.GET("", paymentHandler.GetWallet)
			wallet.POST("/deposit-intent", paymentHandler.CreateDepositIntent)
			wallet.POST("/deposit/confirm", paymentHandler.ConfirmDeposit)
		}

		// Seller earnings
		earnings := v1.Group("/earnings")
		earnings.Use(middleware.AuthRequired())
		{
			earnings.GET("", earningsHandler.GetEarnings)
			earnings.POST("/withdraw", middleware.CheckoutRateLimit(), earningsHandler.WithdrawEarnings)
		}

		// Operator routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.OperatorRequired(cfg))
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			admin.PUT("/products/:id/deactivate", adminHandler.DeactivateProduct)
			admin.PUT("/platform/fee-rate", adminHandler.SetFeeRate)
			admin.POST("/platform/fees/withdraw", middleware.CheckoutRateLimit(), adminHandler.WithdrawPlatformFees)
			admin.PUT("/users/:id/suspend", adminHandler.SuspendUser)
			admin.PUT("/users/:id/reinstate", adminHandler.ReinstateUser)
		}
	}

	return r
}
