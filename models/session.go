package models

// BookingSession holds context between matching and final confirmation. Sessions
// live in Redis with a short TTL; losing one only costs the customer a re-match.
type BookingSession struct {
	SessionID string         `json:"sessionId"`
	Request   ServiceRequest `json:"request"`
	Outcome   MatchOutcome   `json:"outcome"`
}

// ConfirmInput is the payload finalizing a booking session.
type ConfirmInput struct {
	SessionID        string         `json:"sessionId" binding:"required"`
	ProviderID       string         `json:"providerId" binding:"required"`
	Slot             TimeWindowUTC  `json:"slot" binding:"required"`
	Customer         Customer       `json:"customer" binding:"required"`
	PaymentReference string         `json:"paymentReference,omitempty"`
	Price            PriceBreakdown `json:"price,omitzero"`
}
