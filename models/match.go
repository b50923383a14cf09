package models

// MatchResult is a scored, ranked candidate provider for a service request.
// Results are ephemeral; nothing is persisted until a booking is confirmed.
type MatchResult struct {
	Provider   ProviderSnapshot     `json:"provider"`
	DistanceKm float64              `json:"distanceKm"`
	Score      float64              `json:"score"`
	FreeSlots  []AvailabilityWindow `json:"freeSlots"`
}

// MatchOutcome is the full result of a matching run. Degraded is set when one or
// more candidates were dropped because their availability could not be determined;
// an empty Results list with Degraded=false is a legitimate "no match found".
type MatchOutcome struct {
	Results         []MatchResult `json:"results"`
	Degraded        bool          `json:"degraded"`
	FailedProviders []string      `json:"failedProviders,omitempty"`
}
