package routers

import (
	"tianguis-api-io/api/internal/container"
	"tianguis-api-io/api/internal/middleware"
	"tianguis-api-io/api/pkg/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoute creates a new Gin router with service layer architecture
func InitRoute() *gin.Engine {
	serviceContainer := container.NewServiceContainer()
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.TianguisRateLimiter())
	{
		api.GET("/ping", controllers.Ping)

		shippingRoutes(api, serviceContainer)
	}

	return router
}

// shippingRoutes configures the quote endpoint and rule administration
func shippingRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	api.POST("/shipping/quote", sc.QuoteController.QuoteShipping())

	rules := api.Group("/shipping-rules")
	{
		rules.POST("", sc.ShippingRuleController.CreateShippingRule())
		rules.GET("", sc.ShippingRuleController.GetShippingRules())
		rules.GET("/:ruleid", sc.ShippingRuleController.GetShippingRule())
		rules.PUT("/:ruleid", sc.ShippingRuleController.UpdateShippingRule())
		rules.PUT("/:ruleid/active", sc.ShippingRuleController.SetShippingRuleActive())
		rules.DELETE("/:ruleid", sc.ShippingRuleController.DeleteShippingRule())
	}
}
