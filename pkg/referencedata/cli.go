package referencedata

import (
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "reference-data",
		Usage: "Manage the static bus stop and street datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "download bus stops, streets and bus lines from the ZTM API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data-dir",
						Value: "data",
						Usage: "directory to write the datasets into",
					},
				},
				Action: func(c *cli.Context) error {
					return FetchAll(c.String("data-dir"))
				},
			},
		},
	}
}
