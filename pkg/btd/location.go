package btd

import "math"

// EarthRadiusKm is the sphere radius used for great-circle calculations.
const EarthRadiusKm = 6371

type Location struct {
	Type        string    `json:"-" groups:"basic"`
	Coordinates []float64 `json:"coordinates" groups:"basic"`
}

func NewPointLocation(lat float64, lon float64) Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}
}

func (l *Location) Longitude() float64 {
	return l.Coordinates[0]
}

func (l *Location) Latitude() float64 {
	return l.Coordinates[1]
}

// HaversineDistance returns the great-circle distance in kilometres between
// two latitude/longitude pairs given in degrees.
// https://en.wikipedia.org/wiki/Haversine_formula
func HaversineDistance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	lat1 = lat1 * math.Pi / 180
	lon1 = lon1 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180

	deltaLat := lat2 - lat1
	deltaLon := lon2 - lon1

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(deltaLon/2), 2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}
