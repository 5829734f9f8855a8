package models

import "encoding/json"

// TransportType is the MVG product a departure belongs to
type TransportType string

const (
	TransportTypeUBahn       TransportType = "UBAHN"
	TransportTypeSBahn       TransportType = "SBAHN"
	TransportTypeTram        TransportType = "TRAM"
	TransportTypeBus         TransportType = "BUS"
	TransportTypeRegionalBus TransportType = "REGIONAL_BUS"
	TransportTypeBahn        TransportType = "BAHN"
	TransportTypeSchiff      TransportType = "SCHIFF"
	TransportTypeRufTaxi     TransportType = "RUFTAXI"
)

// IsUnderground reports whether t is underground rail
func (t TransportType) IsUnderground() bool {
	return t == TransportTypeUBahn
}

// RawDeparture is a single departure as returned by the MVG departure API.
// Keys without a typed field are kept in Extra and written back on encoding.
// The optional fields stay nil when the provider leaves them out.
type RawDeparture struct {
	Label                 string        `json:"label"`
	Destination           string        `json:"destination"`
	TransportType         TransportType `json:"transportType"`
	RealtimeDepartureTime int64         `json:"realtimeDepartureTime"`
	PlannedDepartureTime  *int64        `json:"plannedDepartureTime,omitempty"`
	DelayInMinutes        *int          `json:"delayInMinutes,omitempty"`
	Cancelled             *bool         `json:"cancelled,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type rawDepartureFields RawDeparture

// UnmarshalJSON decodes the typed fields and keeps every other key in Extra
func (d *RawDeparture) UnmarshalJSON(data []byte) error {
	var fields rawDepartureFields
	extra, err := decodeWithExtra(data, &fields)
	if err != nil {
		return err
	}

	*d = RawDeparture(fields)
	d.Extra = extra
	return nil
}

// MarshalJSON writes the typed fields merged with Extra
func (d RawDeparture) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(rawDepartureFields(d), d.Extra)
}

// Delay returns the delay in minutes, 0 when unknown
func (d RawDeparture) Delay() int {
	if d.DelayInMinutes == nil {
		return 0
	}
	return *d.DelayInMinutes
}

// IsCancelled reports whether the provider marked the departure as cancelled
func (d RawDeparture) IsCancelled() bool {
	return d.Cancelled != nil && *d.Cancelled
}

// MissingFields lists the grouping keys that are empty on d
func (d RawDeparture) MissingFields() []string {
	var missing []string
	if d.Label == "" {
		missing = append(missing, "label")
	}
	if d.Destination == "" {
		missing = append(missing, "destination")
	}
	if d.TransportType == "" {
		missing = append(missing, "transportType")
	}
	if d.RealtimeDepartureTime == 0 {
		missing = append(missing, "realtimeDepartureTime")
	}
	return missing
}

// DestinationGroup holds the departures of one line towards one destination
type DestinationGroup struct {
	Destination string         `json:"destination"`
	Departures  []RawDeparture `json:"departures"`
}

// LineGroup holds every destination served by one line
type LineGroup struct {
	Label        string             `json:"label"`
	Destinations []DestinationGroup `json:"destinations"`
}

// HasUnderground reports whether any departure of the line is underground rail
func (g LineGroup) HasUnderground() bool {
	for _, destination := range g.Destinations {
		for _, departure := range destination.Departures {
			if departure.TransportType.IsUnderground() {
				return true
			}
		}
	}
	return false
}
