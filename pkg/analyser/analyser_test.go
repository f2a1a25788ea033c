package analyser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velotrace/velotrace/pkg/btd"
)

func testSequence() []btd.Snapshot {
	// Vehicle 100 crawls, vehicle 200 covers about 1.1 km per minute which is
	// roughly 67 km/h.
	return []btd.Snapshot{
		{Positions: []btd.VehiclePosition{
			position("100", 52.2300, 21.0100, "2024-01-01 08:00:00"),
			position("200", 52.2000, 21.0000, "2024-01-01 08:00:00"),
		}},
		{Positions: []btd.VehiclePosition{
			position("100", 52.2302, 21.0101, "2024-01-01 08:01:00"),
			position("200", 52.2100, 21.0000, "2024-01-01 08:01:00"),
		}},
		{Positions: []btd.VehiclePosition{
			position("100", 52.2304, 21.0102, "2024-01-01 08:02:00"),
			position("200", 52.2200, 21.0000, "2024-01-01 08:02:00"),
		}},
	}
}

func TestAnalyserRun(t *testing.T) {
	analyser := New(defaultOptions, testReferencePoints(), btd.StreetTable{
		"100": "Marszalkowska",
		"200": "Pulawska",
	})

	report, err := analyser.Run(testSequence())
	require.NoError(t, err)

	assert.Equal(t, 4, report.AllMoments)
	assert.Len(t, report.ValidSpeeds, 4)

	require.Len(t, report.SpeedingEvents, 2)
	assert.Equal(t, "200", report.SpeedingEvents[0].VehicleNumber)
	assert.Equal(t, 1, report.DistinctSpeedingVehicles)

	require.Len(t, report.Streets, 1)
	assert.Positive(t, report.Streets[0].Count)
	assert.Zero(t, report.UnresolvedStreets)

	assert.InDelta(t, 0.5, report.SpeedingShare(), 1e-9)

	assert.Equal(t, "2024-01-01 08:00:00", report.Summary.StartTime)
	assert.Equal(t, "2024-01-01 08:02:00", report.Summary.EndTime)
	assert.Equal(t, 2, report.Summary.MinVehicles)
	assert.Equal(t, 2, report.Summary.MaxVehicles)
}

func TestAnalyserRunIsDeterministic(t *testing.T) {
	analyser := New(defaultOptions, testReferencePoints(), btd.StreetTable{
		"100": "Marszalkowska",
		"200": "Pulawska",
	})

	first, err := analyser.Run(testSequence())
	require.NoError(t, err)
	second, err := analyser.Run(testSequence())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyserRunWithoutReferenceData(t *testing.T) {
	analyser := New(defaultOptions, nil, nil)

	report, err := analyser.Run(testSequence())
	assert.ErrorIs(t, err, ErrNoReferenceData)

	// Speed statistics survive without street attribution.
	require.NotNil(t, report)
	assert.Equal(t, 4, report.AllMoments)
	assert.Empty(t, report.Streets)
}

func TestAnalyserRunEmptySequence(t *testing.T) {
	analyser := New(defaultOptions, testReferencePoints(), btd.StreetTable{})

	report, err := analyser.Run(nil)
	require.NoError(t, err)

	assert.Zero(t, report.AllMoments)
	assert.Empty(t, report.SpeedingEvents)
	assert.Zero(t, report.SpeedingShare())
}

func TestRunSummaryString(t *testing.T) {
	t.Run("same weekday", func(t *testing.T) {
		summary := RunSummary{
			StartTime:   "2024-01-01 08:00:00",
			EndTime:     "2024-01-01 09:00:00",
			MinVehicles: 10,
			MaxVehicles: 12,
		}

		assert.Equal(t,
			"Data for Monday, from 08:00 to 09:00 (10-12 vehicles were active).",
			summary.String())
	})

	t.Run("across midnight", func(t *testing.T) {
		summary := RunSummary{
			StartTime:   "2024-01-01 23:30:00",
			EndTime:     "2024-01-02 00:30:00",
			MinVehicles: 5,
			MaxVehicles: 6,
		}

		assert.Equal(t,
			"Data from 23:30 Monday to 00:30 Tuesday (5-6 vehicles were active).",
			summary.String())
	})

	t.Run("no observations", func(t *testing.T) {
		summary := RunSummary{}

		assert.Equal(t, "(0-0 vehicles were active).", summary.String())
	})
}
