package report

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/velotrace/velotrace/pkg/analyser"
	"github.com/velotrace/velotrace/pkg/snapshots"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render speeding analysis reports",
		Subcommands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "analyse a capture directory and write the report artifacts",
				ArgsUsage: "<capture directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data-dir",
						Value: "data",
						Usage: "directory holding the static reference datasets",
					},
					&cli.StringFlag{
						Name:  "output",
						Value: "output",
						Usage: "base directory for report output",
					},
					&cli.Float64Flag{
						Name:  "speed",
						Usage: "speeding threshold in km/h",
					},
					&cli.IntFlag{
						Name:  "top-streets",
						Usage: "number of streets to keep in the ranking",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.New("a capture directory is required")
					}
					captureDirectory := c.Args().First()

					options := analyser.GetOptions()
					if c.Float64("speed") > 0 {
						options.ComparisonSpeedKmh = c.Float64("speed")
					}
					if c.Int("top-streets") > 0 {
						options.TopStreets = c.Int("top-streets")
					}

					result, err := analyser.AnalyseDirectory(captureDirectory, c.String("data-dir"), options)
					if err != nil {
						return err
					}

					renderer := Renderer{
						OutputDirectory: OutputDirectoryFor(c.String("output"), captureDirectory, options.ComparisonSpeedKmh),
					}
					if err := renderer.Render(result, options); err != nil {
						return err
					}

					fmt.Println(result.Summary.String())
					fmt.Printf("%d of all vehicles reached speeds of %g km/h.\n",
						result.DistinctSpeedingVehicles, options.ComparisonSpeedKmh)
					fmt.Printf("Report finished successfully. Can be found in %s\n", renderer.OutputDirectory)

					return nil
				},
			},
			{
				Name:      "path",
				Usage:     "export observed vehicle paths as GeoJSON",
				ArgsUsage: "<capture directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "vehicle",
						Usage: "vehicle number to export the path of",
					},
					&cli.StringSliceFlag{
						Name:  "line",
						Usage: "line to export the first observed vehicle's path of, repeatable",
					},
					&cli.StringFlag{
						Name:  "output",
						Value: "output",
						Usage: "directory for the path artifacts",
					},
				},
				Action: exportPaths,
			},
		},
	}
}

func exportPaths(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("a capture directory is required")
	}

	vehicleNumber := c.String("vehicle")
	lines := c.StringSlice("line")
	if vehicleNumber == "" && len(lines) == 0 {
		return errors.New("either --vehicle or --line is required")
	}

	sequence, err := snapshots.LoadDirectory(c.Args().First())
	if err != nil {
		return err
	}

	renderer := Renderer{OutputDirectory: c.String("output")}

	if vehicleNumber != "" {
		path := analyser.VehiclePath(sequence, vehicleNumber)
		if len(path) == 0 {
			return fmt.Errorf("no positions collected for vehicle %s", vehicleNumber)
		}

		operatedLines := analyser.LinesForVehicle(sequence, vehicleNumber)
		if err := renderer.RenderVehiclePath(vehicleNumber, operatedLines, path); err != nil {
			return err
		}
	}

	if len(lines) > 0 {
		var linePaths []LinePath

		for _, line := range lines {
			lineVehicle, found := analyser.FirstVehicleForLine(sequence, line)
			if !found {
				log.Warn().Str("line", line).Msg("No vehicle found for line, skipping")
				continue
			}

			linePaths = append(linePaths, LinePath{
				Line:          line,
				VehicleNumber: lineVehicle,
				Path:          analyser.VehiclePath(sequence, lineVehicle),
			})
		}

		if len(linePaths) == 0 {
			return errors.New("none of the requested lines were observed")
		}

		if err := renderer.RenderLinePaths(linePaths); err != nil {
			return err
		}
	}

	return nil
}
