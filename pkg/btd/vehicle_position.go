package btd

// VehiclePosition is a single fleet position record from one collection tick.
type VehiclePosition struct {
	VehicleNumber string `groups:"basic"`

	Lat float64 `groups:"basic"`
	Lon float64 `groups:"basic"`

	Lines   []string `groups:"basic"`
	Brigade string   `groups:"detailed"`

	Timestamp string `groups:"basic"`
}

// HasVehicleNumber reports whether the record carries a usable vehicle
// identifier. Records without one are corrupted and never joined.
func (p *VehiclePosition) HasVehicleNumber() bool {
	return p.VehicleNumber != ""
}

// Snapshot is the set of vehicle positions captured at one collection tick.
// Snapshots are ordered by their place in the collected sequence, not by
// their own timestamps.
type Snapshot struct {
	TimestampHint string
	Positions     []VehiclePosition
}
