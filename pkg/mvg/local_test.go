package mvg

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/mvg-go/internal/models"
	"github.com/jusunglee/mvg-go/internal/store"
)

func newTestLocal() *LocalClient {
	s := store.NewStore()
	s.Update(store.Fixture{
		Stations: []models.Station{{ID: "de:09162:2", Name: "Marienplatz"}},
		Departures: map[string][]models.RawDeparture{
			"de:09162:2": {
				{Label: "U3", TransportType: models.TransportTypeUBahn},
				{Label: "S1", TransportType: models.TransportTypeSBahn},
				{Label: "U6", TransportType: models.TransportTypeUBahn},
			},
		},
	})
	return NewLocal(s)
}

func TestLocalClient_GetStations(t *testing.T) {
	stations, err := newTestLocal().GetStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "Marienplatz", stations[0].Name)
}

func TestLocalClient_GetDepartures(t *testing.T) {
	client := newTestLocal()

	departures, err := client.GetDepartures(context.Background(), "de:09162:2", DefaultDepartureQuery())
	require.NoError(t, err)
	assert.Len(t, departures, 3)

	departures, err = client.GetDepartures(context.Background(), "de:09162:2", DepartureQuery{
		Limit:          1,
		TransportTypes: []models.TransportType{models.TransportTypeSBahn},
	})
	require.NoError(t, err)
	require.Len(t, departures, 1)
	assert.Equal(t, "S1", departures[0].Label)
}

func TestLocalClient_Errors(t *testing.T) {
	client := newTestLocal()

	_, err := client.GetDepartures(context.Background(), "de:09162:6", DefaultDepartureQuery())
	assert.ErrorIs(t, err, ErrStationNotFound)

	for _, stationID := range []string{"", "  ", "\t\n"} {
		_, err = client.GetDepartures(context.Background(), stationID, DefaultDepartureQuery())
		assert.ErrorIs(t, err, ErrInvalidStationID, "station id %q", stationID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.GetStations(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalFromFile(t *testing.T) {
	client, err := NewLocalFromFile(filepath.Join("..", "..", "internal", "store", "testdata", "fixture.json"))
	require.NoError(t, err)

	departures, err := client.GetDepartures(context.Background(), "de:09162:1140", DefaultDepartureQuery())
	require.NoError(t, err)
	assert.Len(t, departures, 6)

	_, err = NewLocalFromFile("does-not-exist.json")
	assert.Error(t, err)
}

func TestClientImplementations(t *testing.T) {
	var _ Client = (*RemoteClient)(nil)
	var _ Client = (*LocalClient)(nil)
}
