package report

// HistogramBin is one bucket of the speed distribution, counting valid
// moments with lower <= speed < upper.
type HistogramBin struct {
	LowerKmh float64 `json:"lower_kmh"`
	UpperKmh float64 `json:"upper_kmh"`
	Count    int     `json:"count"`
}

const histogramBinWidth = 2
const histogramCapKmh = 100

// SpeedHistogram buckets the valid speed population into fixed-width bins,
// capped at the plausibility ceiling.
func SpeedHistogram(speeds []float64) []HistogramBin {
	if len(speeds) == 0 {
		return nil
	}

	maxSpeed := speeds[0]
	for _, speed := range speeds {
		if speed > maxSpeed {
			maxSpeed = speed
		}
	}

	upperEdge := float64(int(maxSpeed) + histogramBinWidth*2)
	if upperEdge > histogramCapKmh {
		upperEdge = histogramCapKmh
	}

	var bins []HistogramBin
	for lower := float64(0); lower < upperEdge; lower += histogramBinWidth {
		bins = append(bins, HistogramBin{LowerKmh: lower, UpperKmh: lower + histogramBinWidth})
	}

	for _, speed := range speeds {
		index := int(speed) / histogramBinWidth
		// The cap is inclusive: a speed exactly on the capped edge lands in
		// the last bin.
		if index >= len(bins) && speed <= upperEdge {
			index = len(bins) - 1
		}
		if index >= 0 && index < len(bins) {
			bins[index].Count++
		}
	}

	return bins
}
