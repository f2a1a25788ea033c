package btd

// SpeedingEvent is a segment whose computed speed met or exceeded the
// comparison threshold, attributed to the end point of the motion.
type SpeedingEvent struct {
	VehicleNumber string   `groups:"basic"`
	Lines         []string `groups:"basic"`
	Brigade       string   `groups:"detailed"`

	Timestamp string   `groups:"basic"`
	Location  Location `groups:"basic"`

	SpeedKmh float64 `groups:"basic"`

	// StreetName is filled in by street attribution. Empty when the street
	// id has no entry in the street table.
	StreetID   string `groups:"detailed"`
	StreetName string `groups:"basic"`
}

// Resolved reports whether street attribution produced a usable name.
func (e *SpeedingEvent) Resolved() bool {
	return e.StreetName != ""
}
