package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const departureJSON = `{
	"plannedDepartureTime": 1700000000000,
	"realtime": true,
	"delayInMinutes": 1,
	"realtimeDepartureTime": 1700000060000,
	"transportType": "UBAHN",
	"label": "U3",
	"divaId": "010U3",
	"network": "swm",
	"trainType": "",
	"destination": "Olympiazentrum",
	"cancelled": false,
	"sev": false,
	"platform": 2,
	"platformChanged": false,
	"messages": [],
	"bannerHash": "",
	"occupancy": "LOW",
	"stopPointGlobalId": "de:09162:6:52:52"
}`

func TestRawDepartureUnmarshal(t *testing.T) {
	var departure RawDeparture
	require.NoError(t, json.Unmarshal([]byte(departureJSON), &departure))

	assert.Equal(t, "U3", departure.Label)
	assert.Equal(t, "Olympiazentrum", departure.Destination)
	assert.Equal(t, TransportTypeUBahn, departure.TransportType)
	assert.Equal(t, int64(1700000060000), departure.RealtimeDepartureTime)
	require.NotNil(t, departure.PlannedDepartureTime)
	assert.Equal(t, int64(1700000000000), *departure.PlannedDepartureTime)
	assert.Equal(t, 1, departure.Delay())
	require.NotNil(t, departure.Cancelled)
	assert.False(t, departure.IsCancelled())

	assert.Contains(t, departure.Extra, "occupancy")
	assert.Contains(t, departure.Extra, "platform")
	assert.NotContains(t, departure.Extra, "label")
	assert.NotContains(t, departure.Extra, "realtimeDepartureTime")
}

func TestRawDepartureRoundTripKeepsUnknownFields(t *testing.T) {
	var departure RawDeparture
	require.NoError(t, json.Unmarshal([]byte(departureJSON), &departure))

	encoded, err := json.Marshal(departure)
	require.NoError(t, err)

	assert.JSONEq(t, departureJSON, string(encoded))
}

func TestRawDepartureMarshalWithoutExtra(t *testing.T) {
	departure := RawDeparture{Label: "19", Destination: "Pasing", TransportType: TransportTypeTram, RealtimeDepartureTime: 10}

	encoded, err := json.Marshal(departure)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"label": "19",
		"destination": "Pasing",
		"transportType": "TRAM",
		"realtimeDepartureTime": 10
	}`, string(encoded))
}

func TestRawDepartureTypedFieldWinsOverExtra(t *testing.T) {
	departure := RawDeparture{
		Label: "U6",
		Extra: map[string]json.RawMessage{
			"label":    json.RawMessage(`"shadowed"`),
			"platform": json.RawMessage(`1`),
		},
	}

	encoded, err := json.Marshal(departure)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "U6", decoded["label"])
	assert.Equal(t, float64(1), decoded["platform"])
}

func TestMissingFields(t *testing.T) {
	complete := RawDeparture{Label: "U3", Destination: "Moosach", TransportType: TransportTypeUBahn, RealtimeDepartureTime: 1}
	assert.Empty(t, complete.MissingFields())

	assert.Equal(t,
		[]string{"label", "destination", "transportType", "realtimeDepartureTime"},
		RawDeparture{}.MissingFields())

	assert.Equal(t, []string{"destination"},
		RawDeparture{Label: "U3", TransportType: TransportTypeUBahn, RealtimeDepartureTime: 1}.MissingFields())
}

func TestTransportTypeIsUnderground(t *testing.T) {
	assert.True(t, TransportTypeUBahn.IsUnderground())

	for _, other := range []TransportType{TransportTypeSBahn, TransportTypeTram, TransportTypeBus, TransportTypeRegionalBus, "", "ubahn"} {
		assert.False(t, other.IsUnderground(), "transport type %q", other)
	}
}

func TestLineGroupHasUnderground(t *testing.T) {
	tram := LineGroup{
		Label: "19",
		Destinations: []DestinationGroup{
			{Destination: "Pasing", Departures: []RawDeparture{{TransportType: TransportTypeTram}}},
		},
	}
	assert.False(t, tram.HasUnderground())

	mixed := LineGroup{
		Label: "X",
		Destinations: []DestinationGroup{
			{Destination: "A", Departures: []RawDeparture{{TransportType: TransportTypeBus}}},
			{Destination: "B", Departures: []RawDeparture{{TransportType: TransportTypeBus}, {TransportType: TransportTypeUBahn}}},
		},
	}
	assert.True(t, mixed.HasUnderground())

	assert.False(t, LineGroup{}.HasUnderground())
}

func TestRawDepartureAbsentOptionalFieldsStayAbsent(t *testing.T) {
	input := `{"label":"U3","destination":"Moosach","transportType":"UBAHN","realtimeDepartureTime":5,"cancelled":null}`

	var departure RawDeparture
	require.NoError(t, json.Unmarshal([]byte(input), &departure))
	assert.Nil(t, departure.PlannedDepartureTime)
	assert.Nil(t, departure.DelayInMinutes)
	assert.Nil(t, departure.Cancelled)
	assert.Equal(t, 0, departure.Delay())
	assert.False(t, departure.IsCancelled())

	encoded, err := json.Marshal(departure)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(encoded))
}

func TestRawDepartureClaimsKeysCaseInsensitively(t *testing.T) {
	var departure RawDeparture
	require.NoError(t, json.Unmarshal([]byte(`{"Label":"U3","DESTINATION":"Moosach","platform":2}`), &departure))

	assert.Equal(t, "U3", departure.Label)
	assert.Equal(t, "Moosach", departure.Destination)
	assert.NotContains(t, departure.Extra, "Label")
	assert.NotContains(t, departure.Extra, "DESTINATION")
	assert.Contains(t, departure.Extra, "platform")

	encoded, err := json.Marshal(departure)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.NotContains(t, decoded, "Label")
	assert.JSONEq(t, `"U3"`, string(decoded["label"]))
}

func TestStationKeepsProviderJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		id    string
		title string
	}{
		{
			name: "full station",
			input: `{
				"name": "Marienplatz",
				"place": "München",
				"id": "de:09162:2",
				"divaId": 2,
				"abbreviation": "MP",
				"products": ["UBAHN", "BUS", "SBAHN"],
				"latitude": 48.13725,
				"longitude": 11.57542
			}`,
			id:    "de:09162:2",
			title: "Marienplatz",
		},
		{
			name:  "absent keys and null",
			input: `{"id":"de:1","name":"X","latitude":null}`,
			id:    "de:1",
			title: "X",
		},
		{
			name:  "unexpected types",
			input: `{"id":"a","divaId":"1234","name":7}`,
			id:    "a",
		},
		{
			name:  "not an object",
			input: `"de:09162:6"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var station Station
			require.NoError(t, json.Unmarshal([]byte(tt.input), &station))
			assert.Equal(t, tt.id, station.ID)
			assert.Equal(t, tt.title, station.Name)

			encoded, err := json.Marshal(station)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(encoded))
		})
	}
}

func TestStationBuiltInCode(t *testing.T) {
	encoded, err := json.Marshal(Station{ID: "de:09162:2", Name: "Marienplatz"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"de:09162:2","name":"Marienplatz"}`, string(encoded))
}
