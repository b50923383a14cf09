package matching

import (
	"math"
	"sort"
	"time"

	"freshnest/models"
)

// Weights are the tunable scoring constants. Ranking stays monotonic in distance
// and rating for any non-negative values.
type Weights struct {
	Distance     float64
	Rating       float64
	UrgencyBonus float64
}

// DefaultWeights mirror the config defaults.
var DefaultWeights = Weights{Distance: 45, Rating: 35, UrgencyBonus: 15}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// score computes a provider's rank points. Closer and higher-rated providers
// always score at least as high as farther, lower-rated ones.
func (w Weights) score(distanceKm, radiusKm, rating float64, urgent, emergencyDispatch bool) float64 {
	proximity := 1 - distanceKm/radiusKm
	if proximity < 0 {
		proximity = 0
	}
	rating = math.Min(rating, 5)
	s := w.Distance*proximity + w.Rating*(rating/5)
	if urgent && emergencyDispatch {
		s += w.UrgencyBonus
	}
	return s
}

// sortResults orders results by score descending, ties broken by ascending
// distance, then provider ID for determinism.
func sortResults(results []models.MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].Provider.ID < results[j].Provider.ID
	})
}

// freeWindows computes the complement of busy intervals over [dayStart, dayEnd).
// Busy windows may overlap or arrive unordered.
func freeWindows(resourceID string, busy []models.AvailabilityWindow, dayStart, dayEnd time.Time) []models.AvailabilityWindow {
	intervals := make([][2]time.Time, 0, len(busy))
	for _, b := range busy {
		if !b.Busy || !b.Overlaps(dayStart, dayEnd) {
			continue
		}
		start, end := b.Start, b.End
		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		intervals = append(intervals, [2]time.Time{start, end})
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i][0].Before(intervals[j][0]) })

	var free []models.AvailabilityWindow
	cursor := dayStart
	for _, iv := range intervals {
		if iv[0].After(cursor) {
			free = append(free, models.AvailabilityWindow{
				ResourceID: resourceID,
				Start:      cursor,
				End:        iv[0],
			})
		}
		if iv[1].After(cursor) {
			cursor = iv[1]
		}
	}
	if cursor.Before(dayEnd) {
		free = append(free, models.AvailabilityWindow{
			ResourceID: resourceID,
			Start:      cursor,
			End:        dayEnd,
		})
	}
	return free
}
