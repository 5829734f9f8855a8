package mvg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jusunglee/mvg-go/internal/models"
	"github.com/jusunglee/mvg-go/internal/store"
)

// LocalClient implements the Client interface for offline usage
// Serves stations and departures from an in-memory fixture store
type LocalClient struct {
	store *store.Store
}

// NewLocal creates a new local client backed by s
func NewLocal(s *store.Store) *LocalClient {
	return &LocalClient{store: s}
}

// NewLocalFromFile creates a local client from a JSON fixture file
func NewLocalFromFile(path string) (*LocalClient, error) {
	s, err := store.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return NewLocal(s), nil
}

func (c *LocalClient) GetStations(ctx context.Context) ([]models.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return c.store.GetStations(), nil
}

// GetDepartures applies the limit and transport type filter of query.
// OffsetInMinutes is ignored as fixture times do not move.
func (c *LocalClient) GetDepartures(ctx context.Context, stationID string, query DepartureQuery) ([]models.RawDeparture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(stationID) == "" {
		return nil, ErrInvalidStationID
	}

	departures, err := c.store.GetDepartures(stationID, query.Limit, query.TransportTypes)
	if errors.Is(err, store.ErrUnknownStation) {
		return nil, fmt.Errorf("%w: %s", ErrStationNotFound, stationID)
	}

	return departures, err
}
