package api

import (
	"errors"

	"github.com/urfave/cli/v2"
	"github.com/velotrace/velotrace/pkg/analyser"
	"github.com/velotrace/velotrace/pkg/api/routes"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Serve the speeding analysis over HTTP",
		Subcommands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "analyse a capture directory and serve the result",
				ArgsUsage: "<capture directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "data-dir",
						Value: "data",
						Usage: "directory holding the static reference datasets",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.New("a capture directory is required")
					}

					report, err := analyser.AnalyseDirectory(
						c.Args().First(), c.String("data-dir"), analyser.GetOptions())
					if err != nil && !errors.Is(err, analyser.ErrNoReferenceData) {
						return err
					}

					routes.SetCurrentReport(report)

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
