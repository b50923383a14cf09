package models

import "time"

// Provider statuses as stored in the directory.
const (
	ProviderActive    = "active"
	ProviderSuspended = "suspended"
)

// Provider is a directory record for a home-services business. The directory owns
// these records; the matching engine reads them and never writes.
type Provider struct {
	ID                 string    `bson:"id" json:"id"`
	BusinessName       string    `bson:"businessName" json:"businessName"`
	LocationGeo        GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	ServiceTypes       []string  `bson:"serviceTypes" json:"serviceTypes"`
	Rating             float64   `bson:"rating" json:"rating"` // 1.0 - 5.0
	ServiceRadiusKm    float64   `bson:"serviceRadiusKm" json:"serviceRadiusKm"`
	Verified           bool      `bson:"verified" json:"verified"`
	Insured            bool      `bson:"insured" json:"insured"`
	Licensed           bool      `bson:"licensed" json:"licensed"`
	VeteranOwned       bool      `bson:"veteranOwned" json:"veteranOwned"`
	EmergencyDispatch  bool      `bson:"emergencyDispatch" json:"emergencyDispatch"`
	CalendarResourceID string    `bson:"calendarResourceId" json:"calendarResourceId"` // resource on the external calendar
	WorkdayStartMin    int       `bson:"workdayStartMin" json:"workdayStartMin"`       // minutes from midnight
	WorkdayEndMin      int       `bson:"workdayEndMin" json:"workdayEndMin"`
	Status             string    `bson:"status" json:"status"`
	CompletedBookings  int       `bson:"completedBookings" json:"completedBookings,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// SupportsService reports whether the provider offers the given service type.
func (p Provider) SupportsService(serviceType string) bool {
	for _, s := range p.ServiceTypes {
		if s == serviceType {
			return true
		}
	}
	return false
}

// ProviderSnapshot is the subset of provider fields denormalized onto a booking at
// creation time, so later directory edits never alter historical bookings.
type ProviderSnapshot struct {
	ID           string   `bson:"id" json:"id"`
	BusinessName string   `bson:"businessName" json:"businessName"`
	LocationGeo  GeoPoint `bson:"locationGeo" json:"locationGeo"`
	Rating       float64  `bson:"rating" json:"rating"`
	Verified     bool     `bson:"verified" json:"verified"`
	Insured      bool     `bson:"insured" json:"insured"`
	Licensed     bool     `bson:"licensed" json:"licensed"`
	VeteranOwned bool     `bson:"veteranOwned" json:"veteranOwned"`
}

// Snapshot captures the booking-relevant view of the provider.
func (p Provider) Snapshot() ProviderSnapshot {
	return ProviderSnapshot{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		LocationGeo:  p.LocationGeo,
		Rating:       p.Rating,
		Verified:     p.Verified,
		Insured:      p.Insured,
		Licensed:     p.Licensed,
		VeteranOwned: p.VeteranOwned,
	}
}
