package main

import (
	"log"

	"agrimart-be/internal/category"
	"agrimart-be/internal/config"
	"agrimart-be/internal/db"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/middleware"
	"agrimart-be/internal/order"
	"agrimart-be/internal/payment"
	"agrimart-be/internal/product"
	"agrimart-be/internal/review"
	"agrimart-be/internal/store"
	"agrimart-be/internal/user"
	"agrimart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	users      *user.Handler
	categories *category.Handler
	products   *product.Handler
	orders     *order.Handler
	reviews    *review.Handler
	stores     *store.Handler
	payments   *payment.Handler
}

func setupRouter(h handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logger.RequestIDMiddleware(),
		logger.LoggingMiddleware(),
		middleware.Auth(),
		middleware.RateLimit(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Accounts
	api.POST("/auth/register", h.users.Register)
	api.POST("/auth/login", h.users.Login)
	api.GET("/auth/me", middleware.RequireAuth(), h.users.Me)

	// Catalog
	api.GET("/categories", h.categories.List)
	api.POST("/categories", middleware.RequireRole(utils.RoleAdmin), h.categories.Create)
	api.PUT("/categories/:id", middleware.RequireRole(utils.RoleAdmin), h.categories.Update)
	api.DELETE("/categories/:id", middleware.RequireRole(utils.RoleAdmin), h.categories.Delete)
	api.GET("/categories/:id/products", h.products.ListByCategory)

	api.GET("/products", h.products.List)
	api.GET("/products/:id", h.products.GetByID)
	api.GET("/products/:id/reviews", h.reviews.ListByProduct)
	api.POST("/products", middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin), h.products.Create)
	api.PUT("/products/:id", middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin), h.products.Update)
	api.DELETE("/products/:id", middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin), h.products.Delete)

	// Orders
	api.POST("/orders", middleware.RequireAuth(), h.orders.Create)
	api.GET("/orders", middleware.RequireRole(utils.RoleAdmin), h.orders.GetAll)
	api.GET("/orders/:id", middleware.RequireAuth(), h.orders.GetByID)
	api.PATCH("/orders/:id/status", middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin), h.orders.UpdateStatus)
	api.GET("/customers/:id/orders", middleware.RequireAuth(), h.orders.GetByCustomer)

	// Supplier views
	api.GET("/suppliers/:id/orders", middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin), h.orders.GetBySupplier)
	api.GET("/suppliers/:id/revenue", middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin), h.orders.RevenueBySupplier)
	api.GET("/suppliers/:id/products", h.products.ListBySupplier)

	// Admin reporting
	api.GET("/reports/revenue/daily", middleware.RequireRole(utils.RoleAdmin), h.orders.DailyRevenue)
	api.GET("/reports/products/top", middleware.RequireRole(utils.RoleAdmin), h.orders.TopProducts)
	api.GET("/reports/orders/status", middleware.RequireRole(utils.RoleAdmin), h.orders.CountByStatus)

	// Reviews
	api.POST("/reviews", middleware.RequireAuth(), h.reviews.Create)

	// Store profiles
	api.POST("/store-profile", middleware.RequireAuth(), h.stores.Upsert)
	api.GET("/store-profile/me", middleware.RequireAuth(), h.stores.Mine)
	api.GET("/admin/store-profiles", middleware.RequireRole(utils.RoleAdmin), h.stores.ListAll)
	api.PATCH("/admin/store-profiles/:id/approve", middleware.RequireRole(utils.RoleAdmin), h.stores.Approve)
	api.GET("/admin/users", middleware.RequireRole(utils.RoleAdmin), h.users.ListUsers)

	// Payment gateway webhook (authenticated by shared key, not JWT)
	api.POST("/payment/webhook", h.payments.Webhook)

	return r
}

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo, orderSvc)

	storeRepo := store.NewRepository(database)
	storeSvc := store.NewService(storeRepo)

	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo, orderSvc)

	router := setupRouter(handlers{
		users:      user.NewHandler(userSvc),
		categories: category.NewHandler(categorySvc),
		products:   product.NewHandler(productSvc),
		orders:     order.NewHandler(orderSvc),
		reviews:    review.NewHandler(reviewSvc),
		stores:     store.NewHandler(storeSvc),
		payments:   payment.NewHandler(paymentSvc, cfg.SepayWebhookKey),
	})

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
