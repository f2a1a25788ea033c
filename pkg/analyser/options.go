package analyser

import (
	"os"
	"strconv"
)

// Options carries the run-scoped analysis thresholds. Every component takes
// the value explicitly; there is no process-wide mutable configuration.
type Options struct {
	// MinSpeedKmh and MaxSpeedKmh bound plausible segment speeds in km/h.
	MinSpeedKmh float64
	MaxSpeedKmh float64

	// ComparisonSpeedKmh is the speeding threshold in km/h.
	ComparisonSpeedKmh float64

	// TopStreets is how many streets the frequency report keeps.
	TopStreets int
}

var defaultOptions = Options{
	MinSpeedKmh:        1,
	MaxSpeedKmh:        100,
	ComparisonSpeedKmh: 50,
	TopStreets:         20,
}

// GetOptions returns the default analysis options with any environment
// variable overrides applied.
func GetOptions() Options {
	options := defaultOptions

	if val := os.Getenv("VELOTRACE_MIN_SPEED"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			options.MinSpeedKmh = parsed
		}
	}

	if val := os.Getenv("VELOTRACE_MAX_SPEED"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			options.MaxSpeedKmh = parsed
		}
	}

	if val := os.Getenv("VELOTRACE_COMPARISON_SPEED"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			options.ComparisonSpeedKmh = parsed
		}
	}

	if val := os.Getenv("VELOTRACE_TOP_STREETS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			options.TopStreets = parsed
		}
	}

	return options
}
