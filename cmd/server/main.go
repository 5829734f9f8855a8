package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/mvg-go/api/handlers"
	"github.com/jusunglee/mvg-go/internal/config"
	"github.com/jusunglee/mvg-go/internal/logging"
	"github.com/jusunglee/mvg-go/pkg/mvg"
)

func main() {
	app := &cli.App{
		Name:  "mvg-server",
		Usage: "Serves grouped MVG departure boards over HTTP",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: runFlags(),
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}

					logging.Setup(os.Stdout, cfg.Log.Format, cfg.Log.Debug)

					client, err := newClient(cfg)
					if err != nil {
						return err
					}

					return serve(c.Context, cfg, client)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "TOML configuration file", EnvVars: []string{"MVG_CONFIG"}},
		&cli.StringFlag{Name: "listen", Value: ":8080", Usage: "listen target for the web server", EnvVars: []string{"MVG_LISTEN"}},
		&cli.StringFlag{Name: "fixtures", Usage: "serve data from a JSON fixture file instead of the MVG API", EnvVars: []string{"MVG_FIXTURES"}},
		&cli.StringFlag{Name: "departures-url", Usage: "MVG departure endpoint", EnvVars: []string{"MVG_DEPARTURES_URL"}},
		&cli.StringFlag{Name: "stations-url", Usage: "MVG station list endpoint", EnvVars: []string{"MVG_STATIONS_URL"}},
		&cli.DurationFlag{Name: "timeout", Usage: "timeout of a single upstream request", EnvVars: []string{"MVG_TIMEOUT"}},
		&cli.Uint64Flag{Name: "retries", Usage: "retries of failed upstream requests", EnvVars: []string{"MVG_RETRIES"}},
		&cli.IntFlag{Name: "limit", Usage: "departures requested per station", EnvVars: []string{"MVG_DEPARTURE_LIMIT"}},
		&cli.StringFlag{Name: "log-format", Usage: "console or json", EnvVars: []string{"MVG_LOG_FORMAT"}},
		&cli.BoolFlag{Name: "debug", Usage: "enable debug logging", EnvVars: []string{"MVG_DEBUG"}},
	}
}

// loadConfig layers explicitly set flags over the config file over the defaults
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("listen") || cfg.Listen == "" {
		cfg.Listen = c.String("listen")
	}
	if c.IsSet("fixtures") {
		cfg.FixturesFile = c.String("fixtures")
	}
	if c.IsSet("departures-url") {
		cfg.MVG.DeparturesURL = c.String("departures-url")
	}
	if c.IsSet("stations-url") {
		cfg.MVG.StationsURL = c.String("stations-url")
	}
	if c.IsSet("timeout") {
		cfg.MVG.Timeout = c.Duration("timeout")
	}
	if c.IsSet("retries") {
		cfg.MVG.MaxRetries = c.Uint64("retries")
	}
	if c.IsSet("limit") {
		cfg.MVG.DepartureLimit = c.Int("limit")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("debug") {
		cfg.Log.Debug = c.Bool("debug")
	}

	return cfg, cfg.Validate()
}

func newClient(cfg config.Config) (mvg.Client, error) {
	if cfg.FixturesFile != "" {
		log.Info().Str("file", cfg.FixturesFile).Msg("Serving departures from fixtures")
		return mvg.NewLocalFromFile(cfg.FixturesFile)
	}

	return mvg.NewRemote(cfg.ClientConfig()), nil
}

func serve(ctx context.Context, cfg config.Config, client mvg.Client) error {
	h := handlers.NewHandler(client, cfg.DepartureQuery())

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}
