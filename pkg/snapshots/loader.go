package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/btd"
)

// ztmResponse is the envelope of one collected tick. The feed reports its own
// connection problems by putting a plain string under result instead of the
// record array.
type ztmResponse struct {
	Result json.RawMessage `json:"result"`
}

type ztmPosition struct {
	VehicleNumber *string  `json:"VehicleNumber"`
	Lat           *float64 `json:"Lat"`
	Lon           *float64 `json:"Lon"`
	Time          *string  `json:"Time"`
	Lines         *string  `json:"Lines"`
	Brigade       *string  `json:"Brigade"`
}

// LoadDirectory reads every capture file in the directory in lexical name
// order and returns the decoded snapshot sequence. File order is the
// collection order and is trusted as-is; snapshots are never re-sorted by
// timestamp.
func LoadDirectory(directory string) ([]btd.Snapshot, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var sequence []btd.Snapshot

	for _, name := range names {
		file, err := os.ReadFile(filepath.Join(directory, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
		}

		snapshot, err := DecodeSnapshot(file)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Skipping undecodable snapshot")
			snapshot = btd.Snapshot{}
		}
		snapshot.TimestampHint = strings.TrimSuffix(name, filepath.Ext(name))

		sequence = append(sequence, snapshot)
	}

	log.Info().
		Int("snapshots", len(sequence)).
		Str("directory", directory).
		Msg("Loaded snapshot sequence")

	return sequence, nil
}

// DecodeSnapshot decodes one tick capture. Records missing coordinates or a
// timestamp are dropped; records missing a vehicle number are kept and
// excluded later at the join.
func DecodeSnapshot(data []byte) (btd.Snapshot, error) {
	var response ztmResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return btd.Snapshot{}, err
	}

	var rawPositions []ztmPosition
	if err := json.Unmarshal(response.Result, &rawPositions); err != nil {
		// A string result is an upstream API error captured verbatim.
		var apiError string
		if json.Unmarshal(response.Result, &apiError) == nil {
			return btd.Snapshot{}, fmt.Errorf("feed error in capture: %s", apiError)
		}
		return btd.Snapshot{}, err
	}

	snapshot := btd.Snapshot{}
	dropped := 0

	for _, raw := range rawPositions {
		if raw.Lat == nil || raw.Lon == nil || raw.Time == nil {
			dropped++
			continue
		}

		position := btd.VehiclePosition{
			Lat:       *raw.Lat,
			Lon:       *raw.Lon,
			Timestamp: *raw.Time,
		}
		if raw.VehicleNumber != nil {
			position.VehicleNumber = *raw.VehicleNumber
		}
		if raw.Lines != nil && *raw.Lines != "" {
			position.Lines = []string{*raw.Lines}
		}
		if raw.Brigade != nil {
			position.Brigade = *raw.Brigade
		}

		snapshot.Positions = append(snapshot.Positions, position)
	}

	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("Dropped malformed position records")
	}

	return snapshot, nil
}
