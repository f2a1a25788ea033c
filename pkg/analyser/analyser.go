package analyser

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/btd"
)

// Analyser runs the full interval pipeline over an ordered snapshot sequence:
// segment building, speed classification, speeding extraction, street
// attribution and street ranking. All inputs are immutable for the run.
type Analyser struct {
	Options Options

	matcher *NearestReferenceMatcher
}

// Report is the structured result of one analysis run, handed to renderers
// as-is. The analyser itself writes no files.
type Report struct {
	Summary RunSummary `groups:"basic"`

	// AllMoments counts the valid segments only; the speeding population is
	// evaluated on all segments independently of the validity cap.
	AllMoments  int             `groups:"basic"`
	ValidSpeeds []float64       `groups:"detailed"`
	Statistics  SpeedStatistics `groups:"basic"`

	SpeedingEvents           []btd.SpeedingEvent `groups:"detailed"`
	DistinctSpeedingVehicles int                 `groups:"basic"`

	Streets           StreetFrequencyReport `groups:"basic"`
	UnresolvedStreets int                   `groups:"basic"`
}

// SpeedingShare returns the speeding event count as a share of all valid
// moments, or 0 when there were none.
func (r *Report) SpeedingShare() float64 {
	if r.AllMoments == 0 {
		return 0
	}

	return float64(len(r.SpeedingEvents)) / float64(r.AllMoments)
}

func New(options Options, points []btd.ReferencePoint, streets btd.StreetTable) *Analyser {
	return &Analyser{
		Options: options,
		matcher: NewNearestReferenceMatcher(points, streets),
	}
}

// Run executes the pipeline over the snapshot sequence. Segments are built
// pair by pair so peak memory stays bounded by the fleet size, not the
// sequence length. Street attribution failure with ErrNoReferenceData still
// returns the report so speed statistics survive without street data.
func (a *Analyser) Run(sequence []btd.Snapshot) (*Report, error) {
	report := &Report{
		Summary: SummariseRun(sequence),
	}

	var labelledSegments []btd.Segment

	for index := 0; index < len(sequence)-1; index++ {
		segments := BuildSegments(sequence[index], sequence[index+1])
		if len(segments) == 0 {
			continue
		}

		labelled, validSpeeds := ClassifySpeeds(segments, a.Options)

		labelledSegments = append(labelledSegments, labelled...)
		report.ValidSpeeds = append(report.ValidSpeeds, validSpeeds...)

		report.SpeedingEvents = append(report.SpeedingEvents,
			ExtractSpeedingEvents(segments, a.Options)...)
	}

	report.AllMoments = len(report.ValidSpeeds)
	report.Statistics = SummariseSpeeds(report.ValidSpeeds)
	report.DistinctSpeedingVehicles = DistinctSpeedingVehicles(report.SpeedingEvents)

	log.Info().
		Int("segments", len(labelledSegments)).
		Int("validMoments", report.AllMoments).
		Int("speedingEvents", len(report.SpeedingEvents)).
		Msg("Interval pipeline finished")

	resolved, err := a.matcher.Match(report.SpeedingEvents)
	if err != nil {
		return report, err
	}

	report.SpeedingEvents = resolved
	report.Streets, report.UnresolvedStreets = AggregateStreets(resolved, a.Options.TopStreets)

	return report, nil
}

// RunSummary is the metadata band of the report: observed time span and
// fleet size range.
type RunSummary struct {
	StartTime string `groups:"basic"`
	EndTime   string `groups:"basic"`

	MinVehicles int `groups:"basic"`
	MaxVehicles int `groups:"basic"`
}

// SummariseRun extracts the first and last observed timestamps and the
// per-tick fleet size range from the snapshot sequence.
func SummariseRun(sequence []btd.Snapshot) RunSummary {
	summary := RunSummary{}

	for _, snapshot := range sequence {
		if len(snapshot.Positions) == 0 {
			continue
		}

		if summary.MinVehicles == 0 || len(snapshot.Positions) < summary.MinVehicles {
			summary.MinVehicles = len(snapshot.Positions)
		}
		if len(snapshot.Positions) > summary.MaxVehicles {
			summary.MaxVehicles = len(snapshot.Positions)
		}

		for _, position := range snapshot.Positions {
			if summary.StartTime == "" || position.Timestamp < summary.StartTime {
				summary.StartTime = position.Timestamp
			}
			if position.Timestamp > summary.EndTime {
				summary.EndTime = position.Timestamp
			}
		}
	}

	return summary
}

func (s RunSummary) String() string {
	info := fmt.Sprintf("(%d-%d vehicles were active).", s.MinVehicles, s.MaxVehicles)

	startTime, startErr := btd.ParseTimestamp(s.StartTime)
	endTime, endErr := btd.ParseTimestamp(s.EndTime)
	if startErr != nil || endErr != nil {
		return info
	}

	if startTime.Weekday() == endTime.Weekday() {
		return fmt.Sprintf("Data for %s, from %s to %s %s",
			startTime.Weekday(), startTime.Format("15:04"), endTime.Format("15:04"), info)
	}

	return fmt.Sprintf("Data from %s %s to %s %s %s",
		startTime.Format("15:04"), startTime.Weekday(),
		endTime.Format("15:04"), endTime.Weekday(), info)
}
