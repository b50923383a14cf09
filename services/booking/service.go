package booking

import (
	"context"

	bookingRepo "freshnest/database/repository/booking"
	"freshnest/models"
	"freshnest/services/availability"
	"freshnest/services/matching"

	"github.com/hibiken/asynq"
)

// BookingSessionService manages the match-then-confirm booking flow.
type BookingSessionService interface {
	StartSession(ctx context.Context, req models.ServiceRequest) (string, models.MatchOutcome, error)
	ConfirmBooking(ctx context.Context, input models.ConfirmInput) (*models.Booking, error)
	CancelSession(ctx context.Context, sessionID string) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	TransitionBooking(ctx context.Context, id, next string) (*models.Booking, error)
}

// DefaultBookingSessionService implements BookingSessionService.
//
// ConfirmGateway must bypass the busy-window cache: the pre-commit re-check has
// to see fresh calendar state, while matching is free to use cached reads.
type DefaultBookingSessionService struct {
	MatchingSvc    matching.MatchingService
	ConfirmGateway availability.Gateway
	BookingRepo    bookingRepo.BookingRepository
	Sessions       SessionStore
	Payments       PaymentVerifier
	TaskClient     *asynq.Client // nil disables reconciliation enqueue
}
