// Package departures turns the flat departure list of a station into the
// grouped board served by the API.
package departures

import (
	"encoding/json"

	"github.com/jinzhu/copier"
	"golang.org/x/exp/slices"

	"github.com/jusunglee/mvg-go/internal/models"
)

// Normalize returns a deep copy of raw that shares no slices or maps with it.
// Records are neither filtered, reordered nor validated.
func Normalize(raw []models.RawDeparture) []models.RawDeparture {
	normalized := make([]models.RawDeparture, 0, len(raw))
	if len(raw) == 0 {
		return normalized
	}

	if err := copier.CopyWithOption(&normalized, &raw, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}

	for i := range normalized {
		normalized[i].PlannedDepartureTime = clonePtr(raw[i].PlannedDepartureTime)
		normalized[i].DelayInMinutes = clonePtr(raw[i].DelayInMinutes)
		normalized[i].Cancelled = clonePtr(raw[i].Cancelled)
		normalized[i].Extra = cloneExtra(raw[i].Extra)
	}

	return normalized
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneExtra copies the sidecar down to its raw bytes
func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}

	cloned := make(map[string]json.RawMessage, len(extra))
	for key, value := range extra {
		cloned[key] = slices.Clone(value)
	}

	return cloned
}
