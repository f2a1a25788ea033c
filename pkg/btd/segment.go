package btd

// Segment is the inferred motion of one vehicle between two temporally
// adjacent snapshots.
type Segment struct {
	VehicleNumber string

	Start VehiclePosition
	End   VehiclePosition

	ElapsedHours float64
	DistanceKm   float64
	SpeedKmh     float64

	// Valid is true when SpeedKmh falls within the configured plausibility
	// bounds. Out-of-bounds segments are sensor noise or teleportation
	// artifacts and are excluded from aggregate statistics.
	Valid bool
}
