package availability

import (
	"context"
	"fmt"
	"time"

	"freshnest/models"
)

// Gateway abstracts the external calendar/scheduling system. The matching engine
// and booking orchestrator only ever talk to this interface, so scoring and
// confirmation logic stay testable without network I/O.
type Gateway interface {
	// BusyWindows returns the busy intervals on a resource between from and to.
	BusyWindows(ctx context.Context, resourceID string, from, to time.Time) ([]models.AvailabilityWindow, error)
	// CreateBooking registers a booking on the resource. The calendar's create
	// call is atomic per resource-window, which makes it the arbiter of slot races.
	CreateBooking(ctx context.Context, resourceID string, window models.TimeWindowUTC, attendee models.Attendee, metadata map[string]string) (*models.BookingConfirmation, error)
}

// UnavailableError signals the calendar system was unreachable or returned
// garbage for a resource. Callers must treat it as "unknown availability", never
// as "no availability".
type UnavailableError struct {
	ResourceID string
	Err        error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("availability unavailable for resource %s: %v", e.ResourceID, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ConflictError signals the calendar rejected a create because the window is
// already taken.
type ConflictError struct {
	ResourceID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot already booked on resource %s", e.ResourceID)
}
