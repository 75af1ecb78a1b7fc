package handler

import (
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers объединяет обработчики всех ресурсов магазина
type Handlers struct {
	Categories *CategoryHandler
	Products   *ProductHandler
	Coupons    *CouponHandler
	Orders     *OrderHandler
	Users      *UserHandler
	Health     *HealthHandler
}

// SetupRoutes настраивает все маршруты shop-service
func SetupRoutes(h *Handlers, authMiddleware *AuthMiddleware, serviceName string) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", h.Health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Вход - публичный
	router.POST("/api/login", h.Users.Login)

	v1 := router.Group("/api/v1")

	categories := v1.Group("/categories")
	{
		categories.POST("", h.Categories.CreateCategory)
		categories.GET("", h.Categories.GetAllCategories)
		categories.GET("/:id", h.Categories.GetCategory)
		categories.PUT("/:id", h.Categories.UpdateCategory)
		categories.DELETE("/:id", h.Categories.DeleteCategory)
	}

	products := v1.Group("/products")
	{
		products.POST("", h.Products.CreateProduct)
		products.GET("", h.Products.GetAllProducts)
		products.GET("/search", h.Products.SearchProducts)
		products.GET("/:id", h.Products.GetProduct)
		products.PUT("/:id", h.Products.UpdateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)
	}

	coupons := v1.Group("/coupons")
	{
		coupons.POST("", h.Coupons.CreateCoupon)
		coupons.GET("", h.Coupons.ListActiveCoupons)
		coupons.GET("/:id", h.Coupons.GetCoupon)
		coupons.PUT("/:id", h.Coupons.UpdateCoupon)
		coupons.DELETE("/:id", h.Coupons.DeleteCoupon)
	}

	users := v1.Group("/users")
	{
		users.POST("", h.Users.CreateUser)
		users.GET("", h.Users.GetAllUsers)
		users.GET("/:id", h.Users.GetUser)
		users.PUT("/:id", h.Users.UpdateUser)
		users.DELETE("/:id", h.Users.DeleteUser)
	}

	// Заказы требуют JWT токен
	orders := v1.Group("/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.POST("", h.Orders.CreateOrder)
		orders.GET("", h.Orders.ListOrders)
		orders.GET("/:id", h.Orders.GetOrder)
		orders.PATCH("/:id/status", h.Orders.UpdateOrderStatus)
		orders.DELETE("/:id", h.Orders.DeleteOrder)
	}

	return router
}
