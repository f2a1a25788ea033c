package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeedHistogram(t *testing.T) {
	bins := SpeedHistogram([]float64{0.5, 1.9, 2.0, 3.5, 10.0})

	require.NotEmpty(t, bins)

	assert.Equal(t, HistogramBin{LowerKmh: 0, UpperKmh: 2, Count: 2}, bins[0])
	assert.Equal(t, HistogramBin{LowerKmh: 2, UpperKmh: 4, Count: 2}, bins[1])
	assert.Equal(t, HistogramBin{LowerKmh: 10, UpperKmh: 12, Count: 1}, bins[5])

	// Edge extends a couple of bins past the observed maximum.
	assert.Equal(t, float64(14), bins[len(bins)-1].UpperKmh)

	total := 0
	for _, bin := range bins {
		total += bin.Count
	}
	assert.Equal(t, 5, total)
}

func TestSpeedHistogramCapsAtCeiling(t *testing.T) {
	bins := SpeedHistogram([]float64{99.5})

	assert.Equal(t, float64(100), bins[len(bins)-1].UpperKmh)
	assert.Equal(t, 1, bins[len(bins)-1].Count)
}

func TestSpeedHistogramMaximumValidSpeedIsCounted(t *testing.T) {
	bins := SpeedHistogram([]float64{97, 100})

	assert.Equal(t, float64(100), bins[len(bins)-1].UpperKmh)
	assert.Equal(t, 1, bins[len(bins)-1].Count, "a speed exactly at the cap stays in the last bin")

	total := 0
	for _, bin := range bins {
		total += bin.Count
	}
	assert.Equal(t, 2, total)
}

func TestSpeedHistogramEmpty(t *testing.T) {
	assert.Nil(t, SpeedHistogram(nil))
}
