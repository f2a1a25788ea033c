package referencedata

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/btd"
)

// busStopRecord is the flat CSV export shape of the bus stop table.
type busStopRecord struct {
	Group     string   `csv:"zespol"`
	Post      string   `csv:"slupek"`
	Name      string   `csv:"nazwa_zespolu"`
	StreetID  string   `csv:"id_ulicy"`
	Lat       *float64 `csv:"szer_geo"`
	Lon       *float64 `csv:"dlug_geo"`
	Direction string   `csv:"kierunek"`
	ValidFrom string   `csv:"obowiazuje_od"`
}

// LoadReferencePointsCSV reads a CSV export of the bus stop table. Rows with
// missing columns or coordinates are skipped.
func LoadReferencePointsCSV(reader io.Reader) ([]btd.ReferencePoint, error) {
	// Tolerate rows with missing trailing columns without touching gocsv's
	// process-wide reader configuration.
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var records []busStopRecord
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return nil, fmt.Errorf("failed to decode bus stops csv: %w", err)
	}

	var points []btd.ReferencePoint
	dropped := 0

	for _, record := range records {
		if record.Lat == nil || record.Lon == nil {
			dropped++
			continue
		}

		points = append(points, btd.ReferencePoint{
			PrimaryIdentifier: fmt.Sprintf("%s-%s", record.Group, record.Post),
			Name:              record.Name,
			Lat:               *record.Lat,
			Lon:               *record.Lon,
			StreetID:          record.StreetID,
			Direction:         record.Direction,
			ValidFrom:         record.ValidFrom,
		})
	}

	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("Excluded csv bus stops with missing coordinates")
	}

	return points, nil
}
