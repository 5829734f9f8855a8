package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/jusunglee/mvg-go/internal/departures"
	"github.com/jusunglee/mvg-go/internal/logging"
	"github.com/jusunglee/mvg-go/internal/models"
	"github.com/jusunglee/mvg-go/pkg/mvg"
)

func main() {
	app := &cli.App{
		Name:      "mvg-board",
		Usage:     "Prints the departure board of an MVG station",
		ArgsUsage: "<station-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "fixtures", Usage: "read departures from a JSON fixture file", EnvVars: []string{"MVG_FIXTURES"}},
			&cli.IntFlag{Name: "limit", Value: mvg.DefaultDepartureQuery().Limit, Usage: "departures requested from the provider"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: func(c *cli.Context) error {
			logging.Setup(os.Stderr, logging.FormatConsole, c.Bool("debug"))

			stationID := c.Args().First()
			if stationID == "" {
				return cli.Exit("station id required, e.g. de:09162:6", 1)
			}

			var client mvg.Client = mvg.NewRemote(mvg.DefaultConfig())
			if path := c.String("fixtures"); path != "" {
				local, err := mvg.NewLocalFromFile(path)
				if err != nil {
					return err
				}
				client = local
			}

			query := mvg.DefaultDepartureQuery()
			query.Limit = c.Int("limit")

			raw, err := client.GetDepartures(c.Context, stationID, query)
			if err != nil {
				return fmt.Errorf("failed to get departures for %s: %w", stationID, err)
			}

			printBoard(os.Stdout, departures.Transform(departures.Normalize(raw)), time.Local)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func printBoard(w io.Writer, board []models.LineGroup, loc *time.Location) {
	if len(board) == 0 {
		fmt.Fprintln(w, "No departures")
		return
	}

	for _, line := range board {
		fmt.Fprintf(w, "\n%s\n", line.Label)
		for _, destination := range line.Destinations {
			times := make([]string, 0, len(destination.Departures))
			for _, departure := range destination.Departures {
				times = append(times, formatDeparture(departure, loc))
			}
			fmt.Fprintf(w, "  %-30s %s\n", destination.Destination, strings.Join(times, "  "))
		}
	}
}

func formatDeparture(departure models.RawDeparture, loc *time.Location) string {
	if departure.IsCancelled() {
		return "cancelled"
	}

	text := time.UnixMilli(departure.RealtimeDepartureTime).In(loc).Format("15:04")
	if delay := departure.Delay(); delay > 0 {
		text += fmt.Sprintf(" (+%d)", delay)
	}
	return text
}
