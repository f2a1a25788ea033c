package collector

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/velotrace/velotrace/pkg/redis_client"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "collector",
		Usage: "Collect live vehicle positions from the ZTM feed",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "collect one capture per minute into a new run directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data-dir",
						Value: "data",
						Usage: "directory to create the run directory in",
					},
					&cli.IntFlag{
						Name:  "minutes",
						Value: 60,
						Usage: "number of minutes to collect, at least 2",
					},
					&cli.StringFlag{
						Name:  "start",
						Usage: "scheduled start time as HH:MM within the next 24 hours",
					},
					&cli.BoolFlag{
						Name:  "publish",
						Usage: "also publish each capture onto the positions queue",
					},
				},
				Action: func(c *cli.Context) error {
					minutes := c.Int("minutes")
					if minutes < 2 {
						return fmt.Errorf("at least 2 minutes are needed to observe position changes")
					}

					collector, err := New(c.String("data-dir"), minutes)
					if err != nil {
						return err
					}

					if c.Bool("publish") {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						queue, err := redis_client.QueueConnection.OpenQueue("positions-queue")
						if err != nil {
							return err
						}
						collector.Queue = queue
					}

					var startAt *time.Time
					if c.String("start") != "" {
						parsed, err := nextOccurrence(c.String("start"))
						if err != nil {
							return err
						}
						startAt = &parsed
					}

					return collector.Run(startAt)
				},
			},
		},
	}
}

// nextOccurrence resolves an HH:MM wall-clock time to its next occurrence
// within 24 hours.
func nextOccurrence(value string) (time.Time, error) {
	clock, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q, expected HH:MM", value)
	}

	now := time.Now()
	startAt := time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location())

	if startAt.Before(now) {
		startAt = startAt.Add(24 * time.Hour)
	}

	return startAt, nil
}
