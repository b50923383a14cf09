package models

// Service types offered on the platform.
const (
	ServiceHouseCleaning = "house-cleaning"
	ServiceLawnCare      = "lawn-care"
	ServiceHandyman      = "handyman"
	ServicePlumbing      = "plumbing"
	ServiceHVAC          = "hvac"
	ServicePestControl   = "pest-control"
)

// KnownServiceTypes lists every bookable service type.
var KnownServiceTypes = []string{
	ServiceHouseCleaning,
	ServiceLawnCare,
	ServiceHandyman,
	ServicePlumbing,
	ServiceHVAC,
	ServicePestControl,
}

// Urgency tiers for a service request.
const (
	UrgencyStandard  = "standard"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// CustomerPreferences narrows the candidate provider pool. All fields are optional;
// nil/zero means "no preference".
type CustomerPreferences struct {
	VeteranOwned  *bool   `json:"veteranOwned,omitempty"`
	MinRating     float64 `json:"minRating,omitempty"`
	MaxDistanceKm float64 `json:"maxDistanceKm,omitempty"`
	PriceMin      float64 `json:"priceMin,omitempty"`
	PriceMax      float64 `json:"priceMax,omitempty"`
}

// TimeWindow is a same-day window in minutes from midnight, e.g. 540-600 for 9:00-10:00 AM.
type TimeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ServiceRequest is a customer's ask for a specific service at a place and time.
// It is treated as immutable once handed to the matching engine.
type ServiceRequest struct {
	ServiceType string               `json:"serviceType" binding:"required"`
	Location    GeoPoint             `json:"location" binding:"required"`
	Date        string               `json:"date" binding:"required"` // "YYYY-MM-DD"
	Window      *TimeWindow          `json:"window,omitempty"`        // nil means any time that day
	Urgency     string               `json:"urgency,omitempty"`       // defaults to standard
	Preferences *CustomerPreferences `json:"preferences,omitempty"`
}
