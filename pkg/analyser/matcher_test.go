package analyser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velotrace/velotrace/pkg/btd"
)

func testReferencePoints() []btd.ReferencePoint {
	return []btd.ReferencePoint{
		{PrimaryIdentifier: "1001-01", Name: "Centrum", Lat: 52.2300, Lon: 21.0100, StreetID: "100"},
		{PrimaryIdentifier: "2002-02", Name: "Wilanowska", Lat: 52.1800, Lon: 21.0200, StreetID: "200"},
	}
}

func TestMatcherResolvesNearestStreet(t *testing.T) {
	matcher := NewNearestReferenceMatcher(testReferencePoints(), btd.StreetTable{
		"100": "Marszalkowska",
		"200": "Pulawska",
	})

	events := []btd.SpeedingEvent{
		{VehicleNumber: "1", Location: btd.NewPointLocation(52.2301, 21.0101)},
		{VehicleNumber: "2", Location: btd.NewPointLocation(52.1799, 21.0199)},
	}

	resolved, err := matcher.Match(events)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	assert.Equal(t, "100", resolved[0].StreetID)
	assert.Equal(t, "Marszalkowska", resolved[0].StreetName)
	assert.Equal(t, "Pulawska", resolved[1].StreetName)

	// Input events are copied, not mutated.
	assert.Empty(t, events[0].StreetName)
}

func TestMatcherUnknownStreetStaysUnresolved(t *testing.T) {
	matcher := NewNearestReferenceMatcher(testReferencePoints(), btd.StreetTable{})

	resolved, err := matcher.Match([]btd.SpeedingEvent{
		{VehicleNumber: "1", Location: btd.NewPointLocation(52.2301, 21.0101)},
	})
	require.NoError(t, err)

	assert.Equal(t, "100", resolved[0].StreetID)
	assert.Empty(t, resolved[0].StreetName)
	assert.False(t, resolved[0].Resolved())
}

func TestMatcherEquidistantTie(t *testing.T) {
	// Two points mirrored around latitude 52.0 are equidistant from it.
	points := []btd.ReferencePoint{
		{PrimaryIdentifier: "north", Lat: 52.0100, Lon: 21.0, StreetID: "1"},
		{PrimaryIdentifier: "south", Lat: 51.9900, Lon: 21.0, StreetID: "2"},
	}
	matcher := NewNearestReferenceMatcher(points, btd.StreetTable{})

	nearest := matcher.Nearest(52.0, 21.0)
	assert.Equal(t, "north", nearest.PrimaryIdentifier, "first point in load order wins the tie")
}

func TestMatcherExactCoordinateMatch(t *testing.T) {
	matcher := NewNearestReferenceMatcher(testReferencePoints(), btd.StreetTable{})

	nearest := matcher.Nearest(52.1800, 21.0200)
	assert.Equal(t, "2002-02", nearest.PrimaryIdentifier)
}

func TestMatcherEmptyReferenceSet(t *testing.T) {
	matcher := NewNearestReferenceMatcher(nil, btd.StreetTable{})

	resolved, err := matcher.Match([]btd.SpeedingEvent{
		{VehicleNumber: "1", Location: btd.NewPointLocation(52.0, 21.0)},
	})

	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, ErrNoReferenceData)
}

func TestMatcherNoEvents(t *testing.T) {
	matcher := NewNearestReferenceMatcher(testReferencePoints(), btd.StreetTable{})

	resolved, err := matcher.Match(nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
