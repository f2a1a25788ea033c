package analyser

import (
	"github.com/velotrace/velotrace/pkg/btd"
)

// ExtractSpeedingEvents selects every segment whose speed meets or exceeds
// the comparison threshold and turns it into an event attributed to the end
// point of the motion. The check runs over all segments, including those
// outside the validity bounds: a very high but real speed is flagged, not
// discarded.
func ExtractSpeedingEvents(segments []btd.Segment, options Options) []btd.SpeedingEvent {
	var events []btd.SpeedingEvent

	for _, segment := range segments {
		if segment.SpeedKmh < options.ComparisonSpeedKmh {
			continue
		}

		events = append(events, btd.SpeedingEvent{
			VehicleNumber: segment.VehicleNumber,
			Lines:         segment.End.Lines,
			Brigade:       segment.End.Brigade,

			Timestamp: segment.End.Timestamp,
			Location:  btd.NewPointLocation(segment.End.Lat, segment.End.Lon),

			SpeedKmh: segment.SpeedKmh,
		})
	}

	return events
}

// DistinctSpeedingVehicles counts the unique vehicle numbers across the
// events using a literal identifier set.
func DistinctSpeedingVehicles(events []btd.SpeedingEvent) int {
	vehicles := map[string]bool{}
	for _, event := range events {
		vehicles[event.VehicleNumber] = true
	}

	return len(vehicles)
}
