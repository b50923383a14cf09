package bookingRepo

import (
	"context"

	"freshnest/models"
)

// BookingRepository persists booking records. Bookings are append-and-transition
// only; there is deliberately no Delete.
type BookingRepository interface {
	// Insert stores a new booking record.
	Insert(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus transitions a booking's status. The caller is responsible for
	// validating the transition against the state machine.
	UpdateStatus(ctx context.Context, id, status string) error
	// SetCalendarConfirmation records the external calendar's confirmation and
	// clears the reconciliation flag.
	SetCalendarConfirmation(ctx context.Context, id, confirmationID string) error
	// MarkNeedsReconciliation flags a booking whose calendar registration failed.
	MarkNeedsReconciliation(ctx context.Context, id string) error
	// ListNeedingReconciliation returns bookings awaiting calendar re-registration.
	ListNeedingReconciliation(ctx context.Context) ([]models.Booking, error)
}
