package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/jusunglee/mvg-go/internal/models"
)

// ErrUnknownStation is returned for station ids the store holds no data for
var ErrUnknownStation = errors.New("unknown station")

// Fixture is the on-disk layout read by LoadFile
type Fixture struct {
	Stations   []models.Station                 `json:"stations"`
	Departures map[string][]models.RawDeparture `json:"departures"`
}

// Store manages in-memory station and departure data
type Store struct {
	mu         sync.RWMutex
	stations   []models.Station
	departures map[string][]models.RawDeparture
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{
		stations:   []models.Station{},
		departures: make(map[string][]models.RawDeparture),
	}
}

// LoadFile creates a store from a JSON fixture file
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
	}

	s := NewStore()
	s.Update(fixture)
	return s, nil
}

// Update replaces the stored data
func (s *Store) Update(fixture Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stations = make([]models.Station, len(fixture.Stations))
	copy(s.stations, fixture.Stations)

	s.departures = make(map[string][]models.RawDeparture, len(fixture.Departures))
	for stationID, departures := range fixture.Departures {
		s.departures[stationID] = append([]models.RawDeparture(nil), departures...)
	}
}

// GetStations returns all stations
func (s *Store) GetStations() []models.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Station, len(s.stations))
	copy(result, s.stations)
	return result
}

// GetDepartures returns up to limit departures of a station, restricted to
// the given transport types when any are passed. A limit <= 0 returns all.
func (s *Store) GetDepartures(stationID string, limit int, transportTypes []models.TransportType) ([]models.RawDeparture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	departures, ok := s.departures[stationID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStation, stationID)
	}

	allowed := make(map[models.TransportType]bool, len(transportTypes))
	for _, transportType := range transportTypes {
		allowed[transportType] = true
	}

	result := make([]models.RawDeparture, 0, len(departures))
	for _, departure := range departures {
		if len(allowed) > 0 && !allowed[departure.TransportType] {
			continue
		}
		if limit > 0 && len(result) == limit {
			break
		}
		result = append(result, departure)
	}

	return result, nil
}
