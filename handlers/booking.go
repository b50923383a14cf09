package handlers

import (
	"errors"
	"net/http"

	"freshnest/models"
	"freshnest/services/booking"
	"freshnest/services/matching"
	"freshnest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the match-then-confirm booking flow over HTTP.
type BookingHandler struct {
	Service booking.BookingSessionService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// StartSession runs matching for a service request and opens a booking session.
// An empty result list is a valid no-match response, not an error.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessionID, outcome, err := h.Service.StartSession(c.Request.Context(), req)
	if err != nil {
		var vErr *matching.ValidationError
		if errors.As(err, &vErr) {
			utils.JSONError(c, http.StatusBadRequest, "invalid service request", vErr.Error())
			return
		}
		h.Logger.Error("failed to start booking session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to match providers",
			"Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"results":   outcome.Results,
		"degraded":  outcome.Degraded,
	})
}

// Confirm finalizes a booking session against the chosen provider and slot.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input models.ConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	confirmed, err := h.Service.ConfirmBooking(c.Request.Context(), input)
	if err != nil {
		var conflict *booking.SlotConflictError
		var sessErr *booking.SessionError
		var upstream *booking.UpstreamError
		switch {
		case errors.As(err, &conflict):
			utils.JSONError(c, http.StatusConflict, "slot no longer available",
				"Another customer booked this slot. Please re-run matching.")
		case errors.As(err, &sessErr):
			utils.JSONError(c, http.StatusBadRequest, "invalid booking session", sessErr.Message)
		case errors.As(err, &upstream):
			// The booking may still have been persisted (pending + reconciliation).
			h.Logger.Error("upstream failure during confirmation", zap.Error(err))
			if confirmed != nil {
				c.JSON(http.StatusAccepted, gin.H{
					"booking": confirmed,
					"warning": "Your booking is reserved and will be finalized shortly.",
				})
				return
			}
			utils.JSONError(c, http.StatusBadGateway, "booking could not be completed",
				"A downstream service failed. Please try again later.")
		default:
			h.Logger.Error("booking confirmation failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "booking confirmation failed",
				"Please try again later.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": confirmed})
}

// CancelSession abandons an open booking session.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.CancelSession(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": sessionID})
}

// GetBooking fetches a booking record by ID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	record, err := h.Service.GetBooking(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": record})
}

// TransitionBooking moves a booking along its status state machine.
func (h *BookingHandler) TransitionBooking(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.Service.TransitionBooking(c.Request.Context(), id, input.Status)
	if err != nil {
		var sessErr *booking.SessionError
		if errors.As(err, &sessErr) {
			utils.JSONError(c, http.StatusConflict, "invalid status transition", sessErr.Message)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": record})
}
