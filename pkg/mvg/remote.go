package mvg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/jusunglee/mvg-go/internal/models"
)

// RemoteClient implements the Client interface against the MVG HTTP API
type RemoteClient struct {
	config     Config
	httpClient *http.Client
}

// NewRemote creates a new client for the MVG HTTP API
func NewRemote(config Config) *RemoteClient {
	return &RemoteClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

func (c *RemoteClient) GetStations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := c.getJSON(ctx, c.config.StationsURL, &stations); err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}

	return stations, nil
}

func (c *RemoteClient) GetDepartures(ctx context.Context, stationID string, query DepartureQuery) ([]models.RawDeparture, error) {
	if strings.TrimSpace(stationID) == "" {
		return nil, ErrInvalidStationID
	}

	reqURL, err := c.departuresURL(stationID, query)
	if err != nil {
		return nil, err
	}

	var departures []models.RawDeparture
	if err := c.getJSON(ctx, reqURL, &departures); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", ErrStationNotFound, stationID)
			case http.StatusBadRequest:
				return nil, fmt.Errorf("%w: %s", ErrInvalidStationID, stationID)
			}
		}
		return nil, fmt.Errorf("failed to fetch departures for %s: %w", stationID, err)
	}

	for _, departure := range departures {
		if missing := departure.MissingFields(); len(missing) > 0 {
			log.Warn().
				Str("station", stationID).
				Str("label", departure.Label).
				Strs("missing", missing).
				Msg("Incomplete departure record")
		}
	}

	return departures, nil
}

func (c *RemoteClient) departuresURL(stationID string, query DepartureQuery) (string, error) {
	u, err := url.Parse(c.config.DeparturesURL)
	if err != nil {
		return "", fmt.Errorf("invalid departures url: %w", err)
	}

	params := u.Query()
	params.Set("globalId", stationID)
	params.Set("limit", strconv.Itoa(query.Limit))
	params.Set("offsetInMinutes", strconv.Itoa(query.OffsetInMinutes))

	if len(query.TransportTypes) > 0 {
		types := make([]string, len(query.TransportTypes))
		for i, transportType := range query.TransportTypes {
			types[i] = string(transportType)
		}
		params.Set("transportTypes", strings.Join(types, ","))
	}

	u.RawQuery = params.Encode()
	return u.String(), nil
}

// getJSON fetches reqURL and decodes the body into v, retrying transient failures
func (c *RemoteClient) getJSON(ctx context.Context, reqURL string, v any) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		// Public APIs often block default Go user agents
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{StatusCode: resp.StatusCode, URL: reqURL}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}

		return nil
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = c.config.RetryInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(retryBackoff, c.config.MaxRetries), ctx)

	return backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("url", reqURL).Str("wait", wait.String()).Msg("Retrying MVG request")
	})
}
