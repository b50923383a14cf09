package providerRepo

import "freshnest/models"

// SearchCriteria defines criteria for a directory search. MaxDistanceKm bounds the
// geo query; preference filters (rating, veteran flag) are applied on top.
type SearchCriteria struct {
	ServiceType   string
	LocationGeo   models.GeoPoint
	MaxDistanceKm float64
	MinRating     float64
	VeteranOwned  *bool
}

// ProviderRepository defines read/write access to the provider directory. The
// matching engine only ever calls Search and GetByID; writes belong to back-office
// flows.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetAll retrieves all providers.
	GetAll() ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// Search returns active providers matching the criteria, nearest first.
	Search(criteria SearchCriteria) ([]models.Provider, error)
}
