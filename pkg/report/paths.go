package report

import (
	"github.com/velotrace/velotrace/pkg/btd"
)

// LinePath is the observed path of the first vehicle found operating a line.
type LinePath struct {
	Line          string
	VehicleNumber string
	Path          []btd.VehiclePosition
}

type pathProperties struct {
	VehicleNumber string   `json:"vehicle_number,omitempty"`
	Line          string   `json:"line,omitempty"`
	Lines         []string `json:"lines,omitempty"`
}

type pathPointProperties struct {
	Timestamp string `json:"timestamp"`

	// Marker is "start" or "end" on the path's endpoints, empty elsewhere.
	Marker string `json:"marker,omitempty"`
}

// VehiclePathGeoJSON builds a feature collection for one vehicle's observed
// path: a LineString through every position plus a point per observation, the
// endpoints marked as start and end.
func VehiclePathGeoJSON(vehicleNumber string, lines []string, path []btd.VehiclePosition) FeatureCollection {
	collection := FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}

	if len(path) == 0 {
		return collection
	}

	collection.Features = append(collection.Features, Feature{
		Type:     "Feature",
		Geometry: lineGeometryFor(path),
		Properties: pathProperties{
			VehicleNumber: vehicleNumber,
			Lines:         lines,
		},
	})

	for index, position := range path {
		properties := pathPointProperties{Timestamp: position.Timestamp}
		if index == 0 {
			properties.Marker = "start"
		} else if index == len(path)-1 {
			properties.Marker = "end"
		}

		collection.Features = append(collection.Features, Feature{
			Type: "Feature",
			Geometry: pointGeometry{
				Type:        "Point",
				Coordinates: []float64{position.Lon, position.Lat},
			},
			Properties: properties,
		})
	}

	return collection
}

// LinePathsGeoJSON builds one feature collection holding a LineString per
// line, with start and end markers for each.
func LinePathsGeoJSON(paths []LinePath) FeatureCollection {
	collection := FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}

	for _, linePath := range paths {
		if len(linePath.Path) == 0 {
			continue
		}

		collection.Features = append(collection.Features, Feature{
			Type:     "Feature",
			Geometry: lineGeometryFor(linePath.Path),
			Properties: pathProperties{
				VehicleNumber: linePath.VehicleNumber,
				Line:          linePath.Line,
			},
		})

		first := linePath.Path[0]
		last := linePath.Path[len(linePath.Path)-1]

		collection.Features = append(collection.Features,
			Feature{
				Type: "Feature",
				Geometry: pointGeometry{
					Type:        "Point",
					Coordinates: []float64{first.Lon, first.Lat},
				},
				Properties: pathPointProperties{Timestamp: first.Timestamp, Marker: "start"},
			},
			Feature{
				Type: "Feature",
				Geometry: pointGeometry{
					Type:        "Point",
					Coordinates: []float64{last.Lon, last.Lat},
				},
				Properties: pathPointProperties{Timestamp: last.Timestamp, Marker: "end"},
			})
	}

	return collection
}

func lineGeometryFor(path []btd.VehiclePosition) lineGeometry {
	coordinates := make([][]float64, 0, len(path))
	for _, position := range path {
		coordinates = append(coordinates, []float64{position.Lon, position.Lat})
	}

	return lineGeometry{
		Type:        "LineString",
		Coordinates: coordinates,
	}
}
