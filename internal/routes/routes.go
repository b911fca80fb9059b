package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/handcart/backend/internal/handlers"
	"github.com/handcart/backend/internal/middleware"
	"github.com/handcart/backend/internal/services/seller"
)

// RegisterSellerRoutes registers applicant-facing seller onboarding routes
func RegisterSellerRoutes(router *gin.Engine, sellerHandler *handlers.SellerHandler, rateLimiter *middleware.RateLimiter) {
	sellerGroup := router.Group("/api/seller")
	sellerGroup.Use(rateLimiter.Middleware(), middleware.AuthMiddleware())
	{
		sellerGroup.POST("/apply", sellerHandler.Apply)
		sellerGroup.POST("/documents", sellerHandler.UploadDocument)
		sellerGroup.GET("/eligibility", sellerHandler.CheckEligibility)
		sellerGroup.PUT("/profile", sellerHandler.UpdateProfile)
	}
}

// RegisterAdminSellerRoutes registers admin review routes
func RegisterAdminSellerRoutes(router *gin.Engine, adminHandler *handlers.AdminSellerHandler) {
	adminGroup := router.Group("/api/admin/seller-applications")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.GET("", adminHandler.ListApplications)
		adminGroup.GET("/stats", adminHandler.Stats)
		adminGroup.GET("/:id", adminHandler.GetApplication)
		adminGroup.PUT("/:id", adminHandler.Review)
		adminGroup.PUT("/:id/suspension", adminHandler.SetSuspension)
	}
}

// RegisterRoutes configures all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, notifier seller.Notifier) {
	// 20 requests per second with a burst of 40 per IP
	rateLimiter := middleware.NewRateLimiter(20, 40)

	sellerHandler := handlers.NewSellerHandler(db)
	adminHandler := handlers.NewAdminSellerHandler(db, notifier)

	RegisterSellerRoutes(router, sellerHandler, rateLimiter)
	RegisterAdminSellerRoutes(router, adminHandler)
}
