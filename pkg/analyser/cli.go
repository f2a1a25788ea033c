package analyser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/velotrace/velotrace/pkg/btd"
	"github.com/velotrace/velotrace/pkg/elastic_client"
	"github.com/velotrace/velotrace/pkg/referencedata"
	"github.com/velotrace/velotrace/pkg/snapshots"
)

const speedingEventsIndexName = "velotrace-speeding-1"

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "analyser",
		Usage: "Reconstruct vehicle movement and report speeding per street",
		Subcommands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "analyse a directory of collected position captures",
				ArgsUsage: "<capture directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data-dir",
						Value: "data",
						Usage: "directory holding the static reference datasets",
					},
					&cli.Float64Flag{
						Name:  "speed",
						Usage: "speeding threshold in km/h",
					},
					&cli.IntFlag{
						Name:  "top-streets",
						Usage: "number of streets to keep in the ranking",
					},
					&cli.BoolFlag{
						Name:  "index-events",
						Usage: "index the speeding events into Elasticsearch",
					},
				},
				Action: runAnalysis,
			},
			{
				Name:      "inspect",
				Usage:     "pretty-print the segments of the first snapshot pair",
				ArgsUsage: "<capture directory>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.New("a capture directory is required")
					}

					sequence, err := snapshots.LoadDirectory(c.Args().First())
					if err != nil {
						return err
					}
					if len(sequence) < 2 {
						return errors.New("at least two snapshots are needed to build segments")
					}

					segments := BuildSegments(sequence[0], sequence[1])
					labelled, validSpeeds := ClassifySpeeds(segments, GetOptions())

					pretty.Println(labelled)
					pretty.Println(SummariseSpeeds(validSpeeds))

					return nil
				},
			},
		},
	}
}

func runAnalysis(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("a capture directory is required")
	}
	captureDirectory := c.Args().First()

	options := GetOptions()
	if c.Float64("speed") > 0 {
		options.ComparisonSpeedKmh = c.Float64("speed")
	}
	if c.Int("top-streets") > 0 {
		options.TopStreets = c.Int("top-streets")
	}

	report, err := AnalyseDirectory(captureDirectory, c.String("data-dir"), options)
	if err != nil {
		return err
	}

	if c.Bool("index-events") {
		if err := elastic_client.Connect(true); err != nil {
			return err
		}

		for _, event := range report.SpeedingEvents {
			eventJSON, _ := json.Marshal(event)
			elastic_client.IndexRequest(speedingEventsIndexName, bytes.NewReader(eventJSON))
		}
		elastic_client.WaitUntilQueueEmpty()
	}

	fmt.Println(report.Summary.String())
	fmt.Printf("%d of all vehicles reached speeds of %g km/h.\n",
		report.DistinctSpeedingVehicles, options.ComparisonSpeedKmh)

	return nil
}

// AnalyseDirectory loads the snapshot sequence and reference datasets from
// disk and runs the full pipeline over them.
func AnalyseDirectory(captureDirectory string, dataDirectory string, options Options) (*Report, error) {
	sequence, err := snapshots.LoadDirectory(captureDirectory)
	if err != nil {
		return nil, err
	}

	var points []btd.ReferencePoint
	var streets btd.StreetTable

	points, streets, err = referencedata.LoadFromDirectory(dataDirectory)
	if err != nil {
		log.Warn().Err(err).Msg("Reference data unavailable, street attribution will fail")
	}

	return New(options, points, streets).Run(sequence)
}
