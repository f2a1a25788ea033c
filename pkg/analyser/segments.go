package analyser

import (
	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/btd"
)

// BuildSegments joins two temporally adjacent snapshots on vehicle number and
// computes elapsed time, distance and speed for every vehicle present in
// both. Records without a vehicle number are dropped before joining. When a
// vehicle number repeats within a snapshot only its first record is used, so
// the join stays deterministic.
func BuildSegments(current btd.Snapshot, next btd.Snapshot) []btd.Segment {
	nextByVehicle := map[string]*btd.VehiclePosition{}
	for index, position := range next.Positions {
		if !position.HasVehicleNumber() {
			continue
		}
		if _, seen := nextByVehicle[position.VehicleNumber]; seen {
			continue
		}
		nextByVehicle[position.VehicleNumber] = &next.Positions[index]
	}

	if len(nextByVehicle) == 0 {
		return nil
	}

	var segments []btd.Segment
	seenVehicles := map[string]bool{}

	for _, position := range current.Positions {
		if !position.HasVehicleNumber() || seenVehicles[position.VehicleNumber] {
			continue
		}
		seenVehicles[position.VehicleNumber] = true

		nextPosition := nextByVehicle[position.VehicleNumber]
		if nextPosition == nil {
			continue
		}

		elapsedHours, err := btd.HoursBetween(position.Timestamp, nextPosition.Timestamp)
		if err != nil {
			log.Debug().
				Str("vehicle", position.VehicleNumber).
				Str("timestamp", position.Timestamp).
				Msg("Dropping record with unparseable timestamp")
			continue
		}

		distanceKm := btd.HaversineDistance(
			position.Lat, position.Lon, nextPosition.Lat, nextPosition.Lon)

		// A non-positive elapsed interval (duplicate tick or upstream clock
		// skew) yields speed 0, which fails the validity bounds downstream.
		speedKmh := float64(0)
		if elapsedHours > 0 {
			speedKmh = distanceKm / elapsedHours
		}

		segments = append(segments, btd.Segment{
			VehicleNumber: position.VehicleNumber,
			Start:         position,
			End:           *nextPosition,
			ElapsedHours:  elapsedHours,
			DistanceKm:    distanceKm,
			SpeedKmh:      speedKmh,
		})
	}

	return segments
}
