package analyser

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/velotrace/velotrace/pkg/btd"
)

// SpeedStatistics summarises the valid segment speed distribution. Count is
// zero for an empty population and every other field is then NaN.
type SpeedStatistics struct {
	Count int     `groups:"basic"`
	Mean  float64 `groups:"basic"`
	Std   float64 `groups:"basic"`

	Min           float64 `groups:"basic"`
	LowerQuartile float64 `groups:"basic"`
	Median        float64 `groups:"basic"`
	UpperQuartile float64 `groups:"basic"`
	Max           float64 `groups:"basic"`
}

// MarshalJSON renders the undefined statistics of an empty population as
// nulls, since NaN has no JSON encoding.
func (s SpeedStatistics) MarshalJSON() ([]byte, error) {
	nullable := func(value float64) *float64 {
		if math.IsNaN(value) {
			return nil
		}
		return &value
	}

	return json.Marshal(struct {
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Std   *float64 `json:"std"`

		Min           *float64 `json:"min"`
		LowerQuartile *float64 `json:"lower_quartile"`
		Median        *float64 `json:"median"`
		UpperQuartile *float64 `json:"upper_quartile"`
		Max           *float64 `json:"max"`
	}{
		Count: s.Count,
		Mean:  nullable(s.Mean),
		Std:   nullable(s.Std),

		Min:           nullable(s.Min),
		LowerQuartile: nullable(s.LowerQuartile),
		Median:        nullable(s.Median),
		UpperQuartile: nullable(s.UpperQuartile),
		Max:           nullable(s.Max),
	})
}

// ClassifySpeeds labels each segment against the configured bounds. It
// returns a new labelled segment slice plus the valid speeds in segment
// order; the input is not mutated. Statistics over the full valid population
// are a separate reduction, SummariseSpeeds.
func ClassifySpeeds(segments []btd.Segment, options Options) ([]btd.Segment, []float64) {
	labelled := make([]btd.Segment, len(segments))
	var validSpeeds []float64

	for index, segment := range segments {
		segment.Valid = segment.SpeedKmh >= options.MinSpeedKmh &&
			segment.SpeedKmh <= options.MaxSpeedKmh
		labelled[index] = segment

		if segment.Valid {
			validSpeeds = append(validSpeeds, segment.SpeedKmh)
		}
	}

	return labelled, validSpeeds
}

// SummariseSpeeds computes count, mean, standard deviation and the five
// number summary over a speed population.
func SummariseSpeeds(speeds []float64) SpeedStatistics {
	statistics := SpeedStatistics{
		Count: len(speeds),
		Mean:  math.NaN(),
		Std:   math.NaN(),

		Min:           math.NaN(),
		LowerQuartile: math.NaN(),
		Median:        math.NaN(),
		UpperQuartile: math.NaN(),
		Max:           math.NaN(),
	}

	if len(speeds) == 0 {
		return statistics
	}

	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	var sum float64
	for _, speed := range sorted {
		sum += speed
	}
	statistics.Mean = sum / float64(len(sorted))

	var squaredError float64
	for _, speed := range sorted {
		squaredError += (speed - statistics.Mean) * (speed - statistics.Mean)
	}
	if len(sorted) > 1 {
		// Sample standard deviation, matching the original report output.
		statistics.Std = math.Sqrt(squaredError / float64(len(sorted)-1))
	}

	statistics.Min = sorted[0]
	statistics.Max = sorted[len(sorted)-1]
	statistics.LowerQuartile = quantile(sorted, 0.25)
	statistics.Median = quantile(sorted, 0.5)
	statistics.UpperQuartile = quantile(sorted, 0.75)

	return statistics
}

// quantile linearly interpolates the q-th quantile of an ascending sorted
// slice.
func quantile(sorted []float64, q float64) float64 {
	position := q * float64(len(sorted)-1)
	lower := int(math.Floor(position))
	upper := int(math.Ceil(position))

	if lower == upper {
		return sorted[lower]
	}

	fraction := position - float64(lower)
	return sorted[lower]*(1-fraction) + sorted[upper]*fraction
}
