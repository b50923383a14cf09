package models

import "time"

// Booking statuses. Bookings are never deleted, only transitioned, so the record
// doubles as an audit trail.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// bookingTransitions is the allowed status state machine.
var bookingTransitions = map[string][]string{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Customer is the booking customer's contact details.
type Customer struct {
	Name  string `bson:"name" json:"name" binding:"required"`
	Email string `bson:"email" json:"email" binding:"required"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// RequestSnapshot denormalizes the originating service request onto the booking.
type RequestSnapshot struct {
	ServiceType string   `bson:"serviceType" json:"serviceType"`
	Location    GeoPoint `bson:"location" json:"location"`
	Date        string   `bson:"date" json:"date"`
	Urgency     string   `bson:"urgency" json:"urgency"`
}

// Booking is a confirmed (or in-flight) service appointment. Provider and request
// details are snapshotted at creation so later directory edits never rewrite history.
type Booking struct {
	ID                   string           `bson:"id" json:"id"`
	ProviderID           string           `bson:"providerId" json:"providerId"`
	Provider             ProviderSnapshot `bson:"provider" json:"provider"`
	Customer             Customer         `bson:"customer" json:"customer"`
	Request              RequestSnapshot  `bson:"request" json:"request"`
	ScheduledStart       time.Time        `bson:"scheduledStart" json:"scheduledStart"`
	ScheduledEnd         time.Time        `bson:"scheduledEnd" json:"scheduledEnd"`
	Status               string           `bson:"status" json:"status"`
	Price                PriceBreakdown   `bson:"price" json:"price"`
	PaymentReference     string           `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	CalendarResourceID   string           `bson:"calendarResourceId" json:"calendarResourceId"`
	CalendarConfirmation string           `bson:"calendarConfirmation,omitempty" json:"calendarConfirmation,omitempty"`
	NeedsReconciliation  bool             `bson:"needsReconciliation" json:"needsReconciliation,omitempty"`
	CreatedAt            time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time        `bson:"updatedAt" json:"updatedAt"`
}
