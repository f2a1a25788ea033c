package analyser

import (
	"errors"

	"github.com/sourcegraph/conc/iter"
	"github.com/velotrace/velotrace/pkg/btd"
)

// ErrNoReferenceData is returned when street attribution is requested but no
// reference points were loaded.
var ErrNoReferenceData = errors.New("no reference points available for street attribution")

// NearestReferenceMatcher resolves speeding events to the street of their
// closest reference point. The reference set is read-only after construction
// so lookups run concurrently without synchronisation.
type NearestReferenceMatcher struct {
	points  []btd.ReferencePoint
	streets btd.StreetTable
}

func NewNearestReferenceMatcher(points []btd.ReferencePoint, streets btd.StreetTable) *NearestReferenceMatcher {
	return &NearestReferenceMatcher{
		points:  points,
		streets: streets,
	}
}

// Match returns a copy of the events with street attribution filled in. An
// event whose street id has no table entry keeps an empty street name; an
// empty reference set fails the whole call.
func (m *NearestReferenceMatcher) Match(events []btd.SpeedingEvent) ([]btd.SpeedingEvent, error) {
	if len(m.points) == 0 {
		return nil, ErrNoReferenceData
	}

	// Each per-event scan is independent; iter.Map preserves input order so
	// the output stays reproducible.
	resolved := iter.Map(events, func(event *btd.SpeedingEvent) btd.SpeedingEvent {
		return m.resolve(*event)
	})

	return resolved, nil
}

func (m *NearestReferenceMatcher) resolve(event btd.SpeedingEvent) btd.SpeedingEvent {
	nearest := m.Nearest(event.Location.Latitude(), event.Location.Longitude())

	event.StreetID = nearest.StreetID
	event.StreetName = m.streets[nearest.StreetID]

	return event
}

// Nearest scans the reference set for the point with the smallest haversine
// distance to the given coordinates. On an exact tie the first point
// encountered in load order wins.
func (m *NearestReferenceMatcher) Nearest(lat float64, lon float64) btd.ReferencePoint {
	nearest := m.points[0]
	nearestDistance := btd.HaversineDistance(lat, lon, nearest.Lat, nearest.Lon)

	for _, point := range m.points[1:] {
		distance := btd.HaversineDistance(lat, lon, point.Lat, point.Lon)
		if distance < nearestDistance {
			nearest = point
			nearestDistance = distance
		}
	}

	return nearest
}
