package matching

import (
	"time"

	"freshnest/models"
)

const minutesPerDay = 24 * 60

// validateRequest rejects malformed requests before any I/O happens. Fail fast;
// no partial matching on invalid input.
func validateRequest(req models.ServiceRequest) error {
	known := false
	for _, s := range models.KnownServiceTypes {
		if s == req.ServiceType {
			known = true
			break
		}
	}
	if !known {
		return newValidationError("serviceType", "unknown service type")
	}

	if !req.Location.Valid() {
		return newValidationError("location", "coordinates must be [lon, lat] within range")
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return newValidationError("date", "must be YYYY-MM-DD")
	}

	if req.Window != nil {
		if req.Window.Start < 0 || req.Window.End > minutesPerDay || req.Window.Start >= req.Window.End {
			return newValidationError("window", "start/end must satisfy 0 <= start < end <= 1440")
		}
	}

	switch req.Urgency {
	case "", models.UrgencyStandard, models.UrgencyUrgent, models.UrgencyEmergency:
	default:
		return newValidationError("urgency", "must be standard, urgent or emergency")
	}

	if p := req.Preferences; p != nil {
		if p.MinRating < 0 || p.MinRating > 5 {
			return newValidationError("preferences.minRating", "must be between 0 and 5")
		}
		if p.MaxDistanceKm < 0 {
			return newValidationError("preferences.maxDistanceKm", "must be non-negative")
		}
	}

	return nil
}
