package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/analyser"
	"github.com/velotrace/velotrace/pkg/btd"
)

// Renderer writes the structured analysis report into a directory as text,
// histogram and GeoJSON artifacts. It never recomputes anything.
type Renderer struct {
	OutputDirectory string
}

func (r *Renderer) Render(result *analyser.Report, options analyser.Options) error {
	if err := os.MkdirAll(r.OutputDirectory, 0755); err != nil {
		return err
	}

	if err := r.renderStreetTable(result, options); err != nil {
		return err
	}

	if err := r.renderHistogram(result); err != nil {
		return err
	}

	if err := r.renderEventsMap(result); err != nil {
		return err
	}

	log.Info().Str("directory", r.OutputDirectory).Msg("Report written")

	return nil
}

func (r *Renderer) renderStreetTable(result *analyser.Report, options analyser.Options) error {
	var builder strings.Builder

	if len(result.Streets) == 0 {
		builder.WriteString("No speeding data available.\n")
	} else {
		fmt.Fprintf(&builder, "Top %d bus stops near which a vehicle was going faster than %g km/h:\n",
			options.TopStreets, options.ComparisonSpeedKmh)

		for _, street := range result.Streets {
			fmt.Fprintf(&builder, "%s: %d times\n", street.StreetName, street.Count)
		}

		if result.UnresolvedStreets > 0 {
			fmt.Fprintf(&builder, "(%d events without a resolvable street)\n", result.UnresolvedStreets)
		}
	}

	return os.WriteFile(filepath.Join(r.OutputDirectory, "speeding-places.txt"),
		[]byte(builder.String()), 0644)
}

func (r *Renderer) renderHistogram(result *analyser.Report) error {
	document := map[string]any{
		"summary":        result.Summary.String(),
		"statistics":     result.Statistics,
		"all_moments":    result.AllMoments,
		"speeding_share": result.SpeedingShare(),
		"bins":           SpeedHistogram(result.ValidSpeeds),
	}

	histogramJSON, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(r.OutputDirectory, "speed-histogram.json"), histogramJSON, 0644)
}

func (r *Renderer) renderEventsMap(result *analyser.Report) error {
	collection := SpeedingEventsGeoJSON(result.SpeedingEvents)

	collectionJSON, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(r.OutputDirectory, "speeding-places.geojson"), collectionJSON, 0644)
}

// RenderVehiclePath writes the observed path of one vehicle as a GeoJSON
// artifact named after the vehicle.
func (r *Renderer) RenderVehiclePath(vehicleNumber string, lines []string, path []btd.VehiclePosition) error {
	collection := VehiclePathGeoJSON(vehicleNumber, lines, path)

	filename := fmt.Sprintf("bus-%s-path.geojson", vehicleNumber)
	return r.writeGeoJSON(filename, collection)
}

// RenderLinePaths writes the paths of the first vehicle of each line into one
// GeoJSON artifact named after the lines.
func (r *Renderer) RenderLinePaths(paths []LinePath) error {
	collection := LinePathsGeoJSON(paths)

	var lines []string
	for _, linePath := range paths {
		lines = append(lines, linePath.Line)
	}

	filename := fmt.Sprintf("bus-lines-%s.geojson", strings.Join(lines, "-"))
	return r.writeGeoJSON(filename, collection)
}

func (r *Renderer) writeGeoJSON(filename string, collection FeatureCollection) error {
	if err := os.MkdirAll(r.OutputDirectory, 0755); err != nil {
		return err
	}

	collectionJSON, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return err
	}

	target := filepath.Join(r.OutputDirectory, filename)
	if err := os.WriteFile(target, collectionJSON, 0644); err != nil {
		return err
	}

	log.Info().Str("file", target).Msg("Path artifact written")

	return nil
}

// OutputDirectoryFor mirrors the capture directory naming: the report for
// data/2024-01-01_08-00-00 at 50 km/h lands in output/2024-01-01_08-00-00-50-report.
func OutputDirectoryFor(baseDirectory string, dataDirectory string, comparisonSpeedKmh float64) string {
	dataName := filepath.Base(filepath.Clean(dataDirectory))

	return filepath.Join(baseDirectory,
		fmt.Sprintf("%s-%d-report", dataName, int(comparisonSpeedKmh)))
}
