package btd

// ReferencePoint is a static geocoded point (a bus stop post) used as a proxy
// for street identity. Loaded once per run and never mutated.
type ReferencePoint struct {
	PrimaryIdentifier string

	Name string

	Lat float64
	Lon float64

	StreetID string

	Direction string
	ValidFrom string
}

// StreetTable maps a street identifier onto its display name.
type StreetTable map[string]string
