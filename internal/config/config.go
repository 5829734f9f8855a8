package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jusunglee/mvg-go/internal/logging"
	"github.com/jusunglee/mvg-go/internal/models"
	"github.com/jusunglee/mvg-go/pkg/mvg"
)

// Config holds all the configuration settings of the server
type Config struct {
	Listen string `toml:"listen"`
	// FixturesFile switches the provider to a local fixture file when set
	FixturesFile string    `toml:"fixtures_file"`
	MVG          MVGConfig `toml:"mvg"`
	Log          LogConfig `toml:"log"`
}

// MVGConfig configures the upstream provider and the departure window
type MVGConfig struct {
	DeparturesURL   string        `toml:"departures_url"`
	StationsURL     string        `toml:"stations_url"`
	UserAgent       string        `toml:"user_agent"`
	Timeout         time.Duration `toml:"timeout"`
	MaxRetries      uint64        `toml:"max_retries"`
	RetryInterval   time.Duration `toml:"retry_interval"`
	DepartureLimit  int           `toml:"departure_limit"`
	OffsetInMinutes int           `toml:"offset_in_minutes"`
	TransportTypes  []string      `toml:"transport_types"`
}

type LogConfig struct {
	Format string `toml:"format"`
	Debug  bool   `toml:"debug"`
}

// Default returns the configuration used when nothing else is set
func Default() Config {
	client := mvg.DefaultConfig()
	query := mvg.DefaultDepartureQuery()

	return Config{
		Listen: ":8080",
		MVG: MVGConfig{
			DeparturesURL:   client.DeparturesURL,
			StationsURL:     client.StationsURL,
			UserAgent:       client.UserAgent,
			Timeout:         client.Timeout,
			MaxRetries:      client.MaxRetries,
			RetryInterval:   client.RetryInterval,
			DepartureLimit:  query.Limit,
			OffsetInMinutes: query.OffsetInMinutes,
		},
		Log: LogConfig{
			Format: logging.FormatConsole,
		},
	}
}

// LoadFile reads a TOML file on top of the defaults
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects settings the server cannot run with
func (c Config) Validate() error {
	var errs []error

	if c.Listen == "" {
		errs = append(errs, errors.New("listen address must not be empty"))
	}

	if c.FixturesFile == "" {
		for name, raw := range map[string]string{"departures_url": c.MVG.DeparturesURL, "stations_url": c.MVG.StationsURL} {
			if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Errorf("mvg.%s must be an absolute url, got %q", name, raw))
			}
		}
	}

	if c.MVG.Timeout <= 0 {
		errs = append(errs, errors.New("mvg.timeout must be positive"))
	}
	if c.MVG.DepartureLimit <= 0 {
		errs = append(errs, errors.New("mvg.departure_limit must be positive"))
	}
	if c.MVG.OffsetInMinutes < 0 {
		errs = append(errs, errors.New("mvg.offset_in_minutes must not be negative"))
	}

	switch c.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.Log.Format))
	}

	return errors.Join(errs...)
}

// ClientConfig returns the settings of the remote MVG client
func (c Config) ClientConfig() mvg.Config {
	return mvg.Config{
		DeparturesURL: c.MVG.DeparturesURL,
		StationsURL:   c.MVG.StationsURL,
		UserAgent:     c.MVG.UserAgent,
		Timeout:       c.MVG.Timeout,
		MaxRetries:    c.MVG.MaxRetries,
		RetryInterval: c.MVG.RetryInterval,
	}
}

// DepartureQuery returns the departure window requested for every station
func (c Config) DepartureQuery() mvg.DepartureQuery {
	query := mvg.DepartureQuery{
		Limit:           c.MVG.DepartureLimit,
		OffsetInMinutes: c.MVG.OffsetInMinutes,
	}

	for _, transportType := range c.MVG.TransportTypes {
		query.TransportTypes = append(query.TransportTypes, models.TransportType(transportType))
	}

	return query
}
