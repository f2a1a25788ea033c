package analyser

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velotrace/velotrace/pkg/btd"
)

func TestClassifySpeeds(t *testing.T) {
	segments := []btd.Segment{
		{VehicleNumber: "1", SpeedKmh: 0},
		{VehicleNumber: "2", SpeedKmh: 1},
		{VehicleNumber: "3", SpeedKmh: 45},
		{VehicleNumber: "4", SpeedKmh: 100},
		{VehicleNumber: "5", SpeedKmh: 180},
	}

	labelled, validSpeeds := ClassifySpeeds(segments, defaultOptions)

	require.Len(t, labelled, 5)
	assert.False(t, labelled[0].Valid)
	assert.True(t, labelled[1].Valid, "minimum bound is inclusive")
	assert.True(t, labelled[2].Valid)
	assert.True(t, labelled[3].Valid, "maximum bound is inclusive")
	assert.False(t, labelled[4].Valid)

	assert.Equal(t, []float64{1, 45, 100}, validSpeeds)
	assert.Equal(t, 3, SummariseSpeeds(validSpeeds).Count)

	// The input slice must stay untouched.
	assert.False(t, segments[1].Valid)
}

func TestSummariseSpeeds(t *testing.T) {
	statistics := SummariseSpeeds([]float64{10, 20, 30, 40})

	assert.Equal(t, 4, statistics.Count)
	assert.InDelta(t, 25.0, statistics.Mean, 1e-9)
	assert.InDelta(t, 12.909944, statistics.Std, 1e-5)
	assert.InDelta(t, 10.0, statistics.Min, 1e-9)
	assert.InDelta(t, 17.5, statistics.LowerQuartile, 1e-9)
	assert.InDelta(t, 25.0, statistics.Median, 1e-9)
	assert.InDelta(t, 32.5, statistics.UpperQuartile, 1e-9)
	assert.InDelta(t, 40.0, statistics.Max, 1e-9)
}

func TestSummariseSpeedsSingleValue(t *testing.T) {
	statistics := SummariseSpeeds([]float64{42})

	assert.Equal(t, 1, statistics.Count)
	assert.InDelta(t, 42.0, statistics.Mean, 1e-9)
	assert.True(t, math.IsNaN(statistics.Std), "sample std is undefined for one value")
	assert.InDelta(t, 42.0, statistics.Median, 1e-9)
}

func TestSummariseSpeedsEmpty(t *testing.T) {
	statistics := SummariseSpeeds(nil)

	assert.Zero(t, statistics.Count)
	assert.True(t, math.IsNaN(statistics.Mean))
	assert.True(t, math.IsNaN(statistics.Median))

	encoded, err := json.Marshal(statistics)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"count": 0,
		"mean": null,
		"std": null,
		"min": null,
		"lower_quartile": null,
		"median": null,
		"upper_quartile": null,
		"max": null
	}`, string(encoded))
}
