package mvg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jusunglee/mvg-go/internal/models"
)

var (
	// ErrStationNotFound is returned when the provider does not know a station
	ErrStationNotFound = errors.New("station not found")
	// ErrInvalidStationID is returned for station ids the provider rejects
	ErrInvalidStationID = errors.New("invalid station id")
)

// StatusError is returned when the provider answers with an unexpected HTTP status
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client defines the interface for accessing MVG data
// Abstracts different data sources (remote API vs fixtures) behind common interface
type Client interface {
	GetStations(ctx context.Context) ([]models.Station, error)
	GetDepartures(ctx context.Context, stationID string, query DepartureQuery) ([]models.RawDeparture, error)
}

// DepartureQuery selects the window of departures requested for a station
type DepartureQuery struct {
	Limit           int
	OffsetInMinutes int
	TransportTypes  []models.TransportType
}

// DefaultDepartureQuery returns the window used by the departures endpoint:
// the next 20 departures of every transport type
func DefaultDepartureQuery() DepartureQuery {
	return DepartureQuery{
		Limit: 20,
	}
}

// Config holds configuration for the remote MVG client
type Config struct {
	DeparturesURL string
	StationsURL   string
	UserAgent     string
	Timeout       time.Duration
	// MaxRetries bounds the retries of transport errors, 429 and 5xx answers
	MaxRetries    uint64
	RetryInterval time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		DeparturesURL: "https://www.mvg.de/api/fib/v2/departure",
		StationsURL:   "https://www.mvg.de/.rest/zdm/stations",
		UserAgent:     "mvg-go/1.0 (https://github.com/jusunglee/mvg-go)",
		Timeout:       10 * time.Second,
		MaxRetries:    2,
		RetryInterval: 500 * time.Millisecond,
	}
}
