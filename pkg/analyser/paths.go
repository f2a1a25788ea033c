package analyser

import (
	"github.com/velotrace/velotrace/pkg/btd"
)

// VehiclePath collects every position record of one vehicle across the
// snapshot sequence, in collection order. Duplicate ticks are kept as-is; the
// path is the raw observation history, not a cleaned trajectory.
func VehiclePath(sequence []btd.Snapshot, vehicleNumber string) []btd.VehiclePosition {
	var path []btd.VehiclePosition

	for _, snapshot := range sequence {
		for _, position := range snapshot.Positions {
			if position.VehicleNumber == vehicleNumber {
				path = append(path, position)
			}
		}
	}

	return path
}

// LinesForVehicle returns the distinct lines the vehicle operated on across
// the sequence, in first-seen order.
func LinesForVehicle(sequence []btd.Snapshot, vehicleNumber string) []string {
	seen := map[string]bool{}
	var lines []string

	for _, snapshot := range sequence {
		for _, position := range snapshot.Positions {
			if position.VehicleNumber != vehicleNumber {
				continue
			}

			for _, line := range position.Lines {
				if !seen[line] {
					seen[line] = true
					lines = append(lines, line)
				}
			}
		}
	}

	return lines
}

// FirstVehicleForLine returns the first vehicle observed operating the given
// line, scanning the sequence in collection order.
func FirstVehicleForLine(sequence []btd.Snapshot, line string) (string, bool) {
	for _, snapshot := range sequence {
		for _, position := range snapshot.Positions {
			if !position.HasVehicleNumber() {
				continue
			}

			for _, candidate := range position.Lines {
				if candidate == line {
					return position.VehicleNumber, true
				}
			}
		}
	}

	return "", false
}
