package matching

import (
	"context"
	"sync"
	"time"

	providerRepo "freshnest/database/repository/provider"
	"freshnest/models"
	"freshnest/services/availability"
	"freshnest/utils"

	"go.uber.org/zap"
)

// MatchingService defines the interface for matching providers to a request.
type MatchingService interface {
	FindProviders(ctx context.Context, req models.ServiceRequest) (models.MatchOutcome, error)
}

// DefaultMatchingService implements MatchingService.
type DefaultMatchingService struct {
	ProviderRepo    providerRepo.ProviderRepository
	Gateway         availability.Gateway
	Weights         Weights
	DefaultRadiusKm float64
}

// FindProviders filters the directory, checks each candidate's calendar
// concurrently, scores survivors and returns a ranked list. An empty list is a
// legitimate "no match found", not an error. Providers whose availability could
// not be determined are excluded and the outcome is flagged degraded.
func (s *DefaultMatchingService) FindProviders(ctx context.Context, req models.ServiceRequest) (models.MatchOutcome, error) {
	logger := utils.GetLogger()

	if err := validateRequest(req); err != nil {
		return models.MatchOutcome{}, err
	}

	radius := s.DefaultRadiusKm
	if radius <= 0 {
		radius = 25
	}
	criteria := providerRepo.SearchCriteria{
		ServiceType:   req.ServiceType,
		LocationGeo:   req.Location,
		MaxDistanceKm: radius,
	}
	if p := req.Preferences; p != nil {
		if p.MaxDistanceKm > 0 {
			criteria.MaxDistanceKm = p.MaxDistanceKm
		}
		criteria.MinRating = p.MinRating
		criteria.VeteranOwned = p.VeteranOwned
	}

	candidates, err := s.ProviderRepo.Search(criteria)
	if err != nil {
		return models.MatchOutcome{}, err
	}
	if len(candidates) == 0 {
		logger.Debug("no providers matched directory filters",
			zap.String("serviceType", req.ServiceType))
		return models.MatchOutcome{Results: []models.MatchResult{}}, nil
	}

	// Candidates whose own service radius excludes the customer are dropped here;
	// geoNear only applies the search radius.
	centerLat, centerLon := req.Location.Lat(), req.Location.Lon()
	filtered := candidates[:0]
	for _, p := range candidates {
		d := haversine(centerLat, centerLon, p.LocationGeo.Lat(), p.LocationGeo.Lon())
		if d > criteria.MaxDistanceKm {
			continue
		}
		if p.ServiceRadiusKm > 0 && d > p.ServiceRadiusKm {
			continue
		}
		filtered = append(filtered, p)
	}

	day, dayStart, dayEnd := requestWindow(req)

	type candidateResult struct {
		provider   models.Provider
		distanceKm float64
		freeSlots  []models.AvailabilityWindow
		failed     bool
	}

	resultsCh := make(chan candidateResult, len(filtered))
	var wg sync.WaitGroup

	for _, p := range filtered {
		wg.Add(1)
		go func(p models.Provider) {
			defer wg.Done()
			d := haversine(centerLat, centerLon, p.LocationGeo.Lat(), p.LocationGeo.Lon())

			from, to := clipToWorkday(p, day, dayStart, dayEnd)
			if !from.Before(to) {
				// Provider doesn't work during the requested window.
				resultsCh <- candidateResult{provider: p, distanceKm: d}
				return
			}

			busy, err := s.Gateway.BusyWindows(ctx, p.CalendarResourceID, from, to)
			if err != nil {
				// Unknown availability is not "no availability": the provider is
				// excluded from ranking and the outcome flagged, never silently
				// scored as unavailable.
				logger.Warn("availability check failed, excluding provider",
					zap.String("providerId", p.ID), zap.Error(err))
				resultsCh <- candidateResult{provider: p, failed: true}
				return
			}

			free := freeWindows(p.CalendarResourceID, busy, from, to)
			resultsCh <- candidateResult{provider: p, distanceKm: d, freeSlots: free}
		}(p)
	}

	wg.Wait()
	close(resultsCh)

	urgent := req.Urgency != "" && req.Urgency != models.UrgencyStandard
	outcome := models.MatchOutcome{Results: []models.MatchResult{}}

	for c := range resultsCh {
		if c.failed {
			outcome.Degraded = true
			outcome.FailedProviders = append(outcome.FailedProviders, c.provider.ID)
			continue
		}
		if len(c.freeSlots) == 0 {
			continue
		}
		score := s.Weights.score(c.distanceKm, criteria.MaxDistanceKm, c.provider.Rating,
			urgent, c.provider.EmergencyDispatch)
		outcome.Results = append(outcome.Results, models.MatchResult{
			Provider:   c.provider.Snapshot(),
			DistanceKm: c.distanceKm,
			Score:      score,
			FreeSlots:  c.freeSlots,
		})
	}

	sortResults(outcome.Results)
	return outcome, nil
}

// requestWindow resolves the request's date (and optional time window) into an
// absolute UTC interval. With no time preference, the whole day qualifies.
func requestWindow(req models.ServiceRequest) (day, start, end time.Time) {
	day, _ = time.Parse("2006-01-02", req.Date) // validated upstream
	if req.Window != nil {
		return day, day.Add(time.Duration(req.Window.Start) * time.Minute),
			day.Add(time.Duration(req.Window.End) * time.Minute)
	}
	return day, day, day.AddDate(0, 0, 1)
}

// clipToWorkday intersects the requested interval with the provider's working
// hours. A provider with no configured workday is treated as all-day.
func clipToWorkday(p models.Provider, day, start, end time.Time) (time.Time, time.Time) {
	if p.WorkdayStartMin >= p.WorkdayEndMin {
		return start, end
	}
	workStart := day.Add(time.Duration(p.WorkdayStartMin) * time.Minute)
	workEnd := day.Add(time.Duration(p.WorkdayEndMin) * time.Minute)
	if workStart.After(start) {
		start = workStart
	}
	if workEnd.Before(end) {
		end = workEnd
	}
	return start, end
}
