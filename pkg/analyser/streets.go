package analyser

import (
	"sort"

	"github.com/velotrace/velotrace/pkg/btd"
)

type StreetCount struct {
	StreetName string `groups:"basic"`
	Count      int    `groups:"basic"`
}

// StreetFrequencyReport is an ordered ranking of streets by speeding event
// count, highest first.
type StreetFrequencyReport []StreetCount

// AggregateStreets counts events per resolved street name and returns the
// top-N ranking plus the number of events whose street stayed unresolved.
// Ties keep first-seen order so repeated runs produce identical output.
func AggregateStreets(events []btd.SpeedingEvent, topStreets int) (StreetFrequencyReport, int) {
	counts := map[string]int{}
	var firstSeen []string
	unresolved := 0

	for _, event := range events {
		if !event.Resolved() {
			unresolved++
			continue
		}

		if _, seen := counts[event.StreetName]; !seen {
			firstSeen = append(firstSeen, event.StreetName)
		}
		counts[event.StreetName]++
	}

	report := make(StreetFrequencyReport, 0, len(firstSeen))
	for _, streetName := range firstSeen {
		report = append(report, StreetCount{
			StreetName: streetName,
			Count:      counts[streetName],
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Count > report[j].Count
	})

	if len(report) > topStreets {
		report = report[:topStreets]
	}

	return report, unresolved
}
