package routes

import (
	"freshnest/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler) {
	booking := r.Group("/api/booking")
	{
		booking.POST("/session", bookingHandler.StartSession)               // Phase 1: match + open session
		booking.POST("/confirm", bookingHandler.Confirm)                    // Phase 2: confirm booking
		booking.DELETE("/session/:sessionID", bookingHandler.CancelSession) // Abandon session
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PATCH("/:id/status", bookingHandler.TransitionBooking)
	}
}
