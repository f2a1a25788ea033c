package archiver

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/velotrace/velotrace/pkg/analyser"
	"github.com/velotrace/velotrace/pkg/database"
	"github.com/velotrace/velotrace/pkg/elastic_client"
	"github.com/velotrace/velotrace/pkg/redis_client"
	"github.com/velotrace/velotrace/pkg/referencedata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "archiver",
		Usage: "Archive queued position captures and flag speeding vehicles",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the positions queue consumers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data-dir",
						Value: "data",
						Usage: "directory holding the static reference datasets",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					// Street attribution is best effort here; without the
					// static datasets events are archived unresolved.
					var matcher *analyser.NearestReferenceMatcher
					points, streets, err := referencedata.LoadFromDirectory(c.String("data-dir"))
					if err != nil {
						log.Warn().Err(err).Msg("No reference data, events will stay unresolved")
					} else {
						matcher = analyser.NewNearestReferenceMatcher(points, streets)
					}

					StartConsumers(matcher, analyser.GetOptions())

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming()
					elastic_client.WaitUntilQueueEmpty()

					return nil
				},
			},
		},
	}
}
