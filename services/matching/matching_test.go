package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	providerRepo "freshnest/database/repository/provider"
	"freshnest/models"
	"freshnest/services/availability"
)

// One degree of latitude is ~111.19 km on a 6371 km sphere.
const kmPerLatDegree = 111.19

var testCenter = models.NewGeoPoint(30.27, -97.74)

func providerAtKm(id string, km, rating float64) models.Provider {
	return models.Provider{
		ID:                 id,
		BusinessName:       "Test " + id,
		LocationGeo:        models.NewGeoPoint(30.27+km/kmPerLatDegree, -97.74),
		ServiceTypes:       []string{models.ServiceHouseCleaning},
		Rating:             rating,
		CalendarResourceID: "cal-" + id,
		Status:             models.ProviderActive,
	}
}

type fakeDirectory struct {
	providers []models.Provider
	err       error
	searches  int
}

func (f *fakeDirectory) GetByID(id string) (*models.Provider, error) {
	for i := range f.providers {
		if f.providers[i].ID == id {
			return &f.providers[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeDirectory) GetAll() ([]models.Provider, error) { return f.providers, nil }
func (f *fakeDirectory) Create(p *models.Provider) error    { return nil }
func (f *fakeDirectory) Update(p *models.Provider) error    { return nil }

func (f *fakeDirectory) Search(c providerRepo.SearchCriteria) ([]models.Provider, error) {
	f.searches++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Provider
	for _, p := range f.providers {
		if p.Status != models.ProviderActive || !p.SupportsService(c.ServiceType) {
			continue
		}
		if c.MinRating > 0 && p.Rating < c.MinRating {
			continue
		}
		if c.VeteranOwned != nil && p.VeteranOwned != *c.VeteranOwned {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeCalendar struct {
	mu    sync.Mutex
	busy  map[string][]models.AvailabilityWindow
	fail  map[string]bool
	calls int
}

func (f *fakeCalendar) BusyWindows(ctx context.Context, resourceID string, from, to time.Time) ([]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail[resourceID] {
		return nil, &availability.UnavailableError{ResourceID: resourceID, Err: errors.New("timeout")}
	}
	return f.busy[resourceID], nil
}

func (f *fakeCalendar) CreateBooking(ctx context.Context, resourceID string, window models.TimeWindowUTC, attendee models.Attendee, metadata map[string]string) (*models.BookingConfirmation, error) {
	return &models.BookingConfirmation{ConfirmationID: "conf-1", Status: "confirmed"}, nil
}

func newService(dir *fakeDirectory, cal *fakeCalendar) *DefaultMatchingService {
	return &DefaultMatchingService{
		ProviderRepo:    dir,
		Gateway:         cal,
		Weights:         DefaultWeights,
		DefaultRadiusKm: 25,
	}
}

func baseRequest() models.ServiceRequest {
	return models.ServiceRequest{
		ServiceType: models.ServiceHouseCleaning,
		Location:    testCenter,
		Date:        "2026-09-04",
	}
}

func TestFindProvidersRankedByScore(t *testing.T) {
	dir := &fakeDirectory{providers: []models.Provider{
		providerAtKm("far-good", 12, 4.9),
		providerAtKm("near-ok", 2, 4.0),
		providerAtKm("mid-bad", 6, 2.5),
	}}
	svc := newService(dir, &fakeCalendar{})

	outcome, err := svc.FindProviders(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if len(outcome.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(outcome.Results))
	}
	for i := 1; i < len(outcome.Results); i++ {
		prev, cur := outcome.Results[i-1], outcome.Results[i]
		if cur.Score > prev.Score {
			t.Errorf("results not sorted by score: %s (%.2f) after %s (%.2f)",
				cur.Provider.ID, cur.Score, prev.Provider.ID, prev.Score)
		}
		if cur.Score == prev.Score && cur.DistanceKm < prev.DistanceKm {
			t.Errorf("score tie not broken by distance: %s before %s", prev.Provider.ID, cur.Provider.ID)
		}
	}
	if outcome.Results[0].Provider.ID != "near-ok" {
		t.Errorf("top result = %s, want near-ok", outcome.Results[0].Provider.ID)
	}
}

func TestUrgencyBonusPrefersEmergencyDispatch(t *testing.T) {
	regular := providerAtKm("a-regular", 3, 4.5)
	dispatch := providerAtKm("b-dispatch", 3, 4.5)
	dispatch.EmergencyDispatch = true
	dir := &fakeDirectory{providers: []models.Provider{regular, dispatch}}
	svc := newService(dir, &fakeCalendar{})

	req := baseRequest()
	req.Urgency = models.UrgencyEmergency
	outcome, err := svc.FindProviders(context.Background(), req)
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if len(outcome.Results) != 2 || outcome.Results[0].Provider.ID != "b-dispatch" {
		t.Fatalf("emergency request should rank dispatch-capable provider first, got %+v", outcome.Results)
	}

	// Standard urgency grants no bonus; the tie falls to provider ID.
	req.Urgency = models.UrgencyStandard
	outcome, err = svc.FindProviders(context.Background(), req)
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if outcome.Results[0].Provider.ID != "a-regular" {
		t.Errorf("standard request should not apply urgency bonus, got %s first", outcome.Results[0].Provider.ID)
	}
}

func TestMaxDistancePreferenceExcludes(t *testing.T) {
	dir := &fakeDirectory{providers: []models.Provider{
		providerAtKm("near", 4, 3.0),
		providerAtKm("far", 16, 5.0), // perfect rating, but outside the cap
	}}
	svc := newService(dir, &fakeCalendar{})

	req := baseRequest()
	req.Preferences = &models.CustomerPreferences{MaxDistanceKm: 10}
	outcome, err := svc.FindProviders(context.Background(), req)
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if len(outcome.Results) != 1 || outcome.Results[0].Provider.ID != "near" {
		t.Fatalf("distance cap not enforced: %+v", outcome.Results)
	}
}

func TestProviderServiceRadiusExcludes(t *testing.T) {
	tooFar := providerAtKm("small-radius", 8, 4.8)
	tooFar.ServiceRadiusKm = 5
	inRange := providerAtKm("big-radius", 8, 4.0)
	inRange.ServiceRadiusKm = 20
	dir := &fakeDirectory{providers: []models.Provider{tooFar, inRange}}
	svc := newService(dir, &fakeCalendar{})

	outcome, err := svc.FindProviders(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if len(outcome.Results) != 1 || outcome.Results[0].Provider.ID != "big-radius" {
		t.Fatalf("provider's own service radius not enforced: %+v", outcome.Results)
	}
}

func TestAvailabilityFailureDegradesNotFails(t *testing.T) {
	var providers []models.Provider
	for i := 0; i < 5; i++ {
		providers = append(providers, providerAtKm(fmt.Sprintf("p%d", i), float64(i+1), 4.0))
	}
	dir := &fakeDirectory{providers: providers}
	cal := &fakeCalendar{fail: map[string]bool{"cal-p2": true}}
	svc := newService(dir, cal)

	outcome, err := svc.FindProviders(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("partial availability failure must not fail the match: %v", err)
	}
	if len(outcome.Results) != 4 {
		t.Fatalf("got %d results, want 4", len(outcome.Results))
	}
	if !outcome.Degraded {
		t.Error("outcome not flagged degraded")
	}
	if len(outcome.FailedProviders) != 1 || outcome.FailedProviders[0] != "p2" {
		t.Errorf("failedProviders = %v, want [p2]", outcome.FailedProviders)
	}
	for _, r := range outcome.Results {
		if r.Provider.ID == "p2" {
			t.Error("provider with unknown availability must not be ranked")
		}
	}
}

func TestValidationRejectsBeforeAnyIO(t *testing.T) {
	dir := &fakeDirectory{providers: []models.Provider{providerAtKm("p1", 2, 4.0)}}
	cal := &fakeCalendar{}
	svc := newService(dir, cal)

	cases := []struct {
		name string
		mut  func(*models.ServiceRequest)
	}{
		{"unknown service type", func(r *models.ServiceRequest) { r.ServiceType = "snow-removal" }},
		{"bad coordinates", func(r *models.ServiceRequest) { r.Location = models.GeoPoint{Type: "Point", Coordinates: []float64{-97.74, 123}} }},
		{"bad date", func(r *models.ServiceRequest) { r.Date = "04/09/2026" }},
		{"inverted window", func(r *models.ServiceRequest) { r.Window = &models.TimeWindow{Start: 600, End: 540} }},
		{"unknown urgency", func(r *models.ServiceRequest) { r.Urgency = "asap" }},
		{"rating out of range", func(r *models.ServiceRequest) {
			r.Preferences = &models.CustomerPreferences{MinRating: 7}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mut(&req)
			_, err := svc.FindProviders(context.Background(), req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
		})
	}
	if dir.searches != 0 || cal.calls != 0 {
		t.Errorf("invalid requests reached I/O: %d searches, %d calendar calls", dir.searches, cal.calls)
	}
}

func TestEmptyDirectoryIsNoMatchNotError(t *testing.T) {
	svc := newService(&fakeDirectory{}, &fakeCalendar{})
	outcome, err := svc.FindProviders(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("empty match must not be an error: %v", err)
	}
	if outcome.Results == nil || len(outcome.Results) != 0 || outcome.Degraded {
		t.Errorf("want empty non-nil results and no degradation, got %+v", outcome)
	}
}

func TestBusyCalendarYieldsFreeComplement(t *testing.T) {
	day := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	dir := &fakeDirectory{providers: []models.Provider{providerAtKm("p1", 2, 4.0)}}
	cal := &fakeCalendar{busy: map[string][]models.AvailabilityWindow{
		"cal-p1": {{ResourceID: "cal-p1", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), Busy: true}},
	}}
	svc := newService(dir, cal)

	req := baseRequest()
	req.Window = &models.TimeWindow{Start: 9 * 60, End: 13 * 60}
	outcome, err := svc.FindProviders(context.Background(), req)
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if len(outcome.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(outcome.Results))
	}
	free := outcome.Results[0].FreeSlots
	if len(free) != 2 {
		t.Fatalf("free slots = %+v, want two windows around the busy hour", free)
	}
	if !free[0].Start.Equal(day.Add(9*time.Hour)) || !free[0].End.Equal(day.Add(10*time.Hour)) {
		t.Errorf("first free slot = %v-%v, want 09:00-10:00", free[0].Start, free[0].End)
	}
	if !free[1].Start.Equal(day.Add(11*time.Hour)) || !free[1].End.Equal(day.Add(13*time.Hour)) {
		t.Errorf("second free slot = %v-%v, want 11:00-13:00", free[1].Start, free[1].End)
	}
}

func TestFullyBookedProviderIsSkippedSilently(t *testing.T) {
	day := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	dir := &fakeDirectory{providers: []models.Provider{providerAtKm("p1", 2, 4.0)}}
	cal := &fakeCalendar{busy: map[string][]models.AvailabilityWindow{
		"cal-p1": {{ResourceID: "cal-p1", Start: day, End: day.AddDate(0, 0, 1), Busy: true}},
	}}
	svc := newService(dir, cal)

	outcome, err := svc.FindProviders(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if len(outcome.Results) != 0 {
		t.Errorf("fully booked provider still ranked: %+v", outcome.Results)
	}
	if outcome.Degraded {
		t.Error("a fully booked calendar is not a degraded outcome")
	}
}

func TestWorkdayClipsRequestedWindow(t *testing.T) {
	day := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	p := providerAtKm("p1", 2, 4.0)
	p.WorkdayStartMin = 8 * 60
	p.WorkdayEndMin = 17 * 60
	dir := &fakeDirectory{providers: []models.Provider{p}}
	svc := newService(dir, &fakeCalendar{})

	outcome, err := svc.FindProviders(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("FindProviders: %v", err)
	}
	if len(outcome.Results) != 1 || len(outcome.Results[0].FreeSlots) != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome.Results)
	}
	slot := outcome.Results[0].FreeSlots[0]
	if !slot.Start.Equal(day.Add(8*time.Hour)) || !slot.End.Equal(day.Add(17*time.Hour)) {
		t.Errorf("free slot = %v-%v, want clipped to 08:00-17:00", slot.Start, slot.End)
	}
}
