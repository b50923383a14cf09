package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from latitude/longitude.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Lat returns the latitude, or 0 when the point is malformed.
func (g GeoPoint) Lat() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// Lon returns the longitude, or 0 when the point is malformed.
func (g GeoPoint) Lon() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Valid reports whether the point has in-range coordinates.
func (g GeoPoint) Valid() bool {
	if len(g.Coordinates) != 2 {
		return false
	}
	lon, lat := g.Coordinates[0], g.Coordinates[1]
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
