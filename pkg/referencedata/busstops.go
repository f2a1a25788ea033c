package referencedata

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/btd"
)

// The bus stop endpoint returns rows as ordered key/value cells rather than
// flat objects.
type tabularResponse struct {
	Result []tabularRow `json:"result"`
}

type tabularRow struct {
	Values []tabularCell `json:"values"`
}

type tabularCell struct {
	Value string `json:"value"`
	Key   string `json:"key"`
}

func (r *tabularRow) lookup(key string) string {
	for _, cell := range r.Values {
		if cell.Key == key {
			return cell.Value
		}
	}

	return ""
}

// LoadReferencePoints decodes the ZTM bus stop table into reference points.
// Rows with a missing or unparseable coordinate are excluded here so the
// matcher only ever sees usable points.
func LoadReferencePoints(reader io.Reader) ([]btd.ReferencePoint, error) {
	var response tabularResponse
	if err := json.NewDecoder(reader).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode bus stops: %w", err)
	}

	var points []btd.ReferencePoint
	dropped := 0

	for _, row := range response.Result {
		lat, latErr := strconv.ParseFloat(row.lookup("szer_geo"), 64)
		lon, lonErr := strconv.ParseFloat(row.lookup("dlug_geo"), 64)
		if latErr != nil || lonErr != nil {
			dropped++
			continue
		}

		points = append(points, btd.ReferencePoint{
			PrimaryIdentifier: fmt.Sprintf("%s-%s", row.lookup("zespol"), row.lookup("slupek")),
			Name:              row.lookup("nazwa_zespolu"),
			Lat:               lat,
			Lon:               lon,
			StreetID:          row.lookup("id_ulicy"),
			Direction:         row.lookup("kierunek"),
			ValidFrom:         row.lookup("obowiazuje_od"),
		})
	}

	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("Excluded bus stops with malformed coordinates")
	}

	return points, nil
}
