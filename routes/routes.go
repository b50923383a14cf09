package routes

import (
	"freshnest/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, providerHandler *handlers.ProviderHandler) {
	r.GET("/health", handlers.Health)

	pricing := r.Group("/api/pricing")
	{
		pricing.POST("/quote", handlers.Quote)
	}

	RegisterBookingRoutes(r, bookingHandler)

	providers := r.Group("/api/providers")
	{
		providers.POST("", providerHandler.CreateProvider)
		providers.GET("", providerHandler.ListProviders)
		providers.GET("/:id", providerHandler.GetProvider)
		providers.PUT("/:id", providerHandler.UpdateProvider)
	}
}
