package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/velotrace/velotrace/pkg/analyser"
	"github.com/velotrace/velotrace/pkg/api"
	"github.com/velotrace/velotrace/pkg/archiver"
	"github.com/velotrace/velotrace/pkg/collector"
	"github.com/velotrace/velotrace/pkg/referencedata"
	"github.com/velotrace/velotrace/pkg/report"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("VELOTRACE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("VELOTRACE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "velotrace",
		Description: "Single binary of truth for Velotrace - runs all the services",

		Commands: []*cli.Command{
			analyser.RegisterCLI(),
			api.RegisterCLI(),
			archiver.RegisterCLI(),
			collector.RegisterCLI(),
			referencedata.RegisterCLI(),
			report.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
