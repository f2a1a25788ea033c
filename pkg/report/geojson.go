package report

import (
	"github.com/jinzhu/copier"
	"github.com/velotrace/velotrace/pkg/btd"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string `json:"type"`
	Geometry   any    `json:"geometry"`
	Properties any    `json:"properties"`
}

type pointGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type lineGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type eventProperties struct {
	VehicleNumber string   `json:"vehicle_number"`
	Lines         []string `json:"lines,omitempty"`
	Timestamp     string   `json:"timestamp"`
	SpeedKmh      float64  `json:"speed_kmh"`
	StreetName    string   `json:"street_name,omitempty"`
}

// SpeedingEventsGeoJSON builds a point feature collection of the speeding
// events for map rendering.
func SpeedingEventsGeoJSON(events []btd.SpeedingEvent) FeatureCollection {
	collection := FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}

	for _, event := range events {
		var properties eventProperties
		if err := copier.Copy(&properties, &event); err != nil {
			continue
		}

		collection.Features = append(collection.Features, Feature{
			Type: "Feature",
			Geometry: pointGeometry{
				Type:        "Point",
				Coordinates: event.Location.Coordinates,
			},
			Properties: properties,
		})
	}

	return collection
}
