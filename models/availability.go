package models

import "time"

// AvailabilityWindow is a single busy or free interval on a calendar resource.
// Windows are transient query results; the external calendar is the source of truth.
type AvailabilityWindow struct {
	ResourceID string    `json:"resourceId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Busy       bool      `json:"busy"`
}

// Overlaps reports whether two windows share any time.
func (w AvailabilityWindow) Overlaps(start, end time.Time) bool {
	return w.Start.Before(end) && start.Before(w.End)
}

// TimeWindowUTC is an absolute slot on a provider's calendar resource.
type TimeWindowUTC struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// Attendee is the customer contact handed to the calendar on booking creation.
type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingConfirmation is the calendar system's acknowledgement of a created booking.
type BookingConfirmation struct {
	ConfirmationID string `json:"confirmationId"`
	Status         string `json:"status"`
}
