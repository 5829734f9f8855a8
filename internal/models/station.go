package models

import (
	"bytes"
	"encoding/json"
)

// Station is one entry of the MVG station list. The provider's JSON is kept
// in Raw and written back byte for byte; ID and Name are read from it when
// they are strings.
type Station struct {
	ID   string
	Name string

	Raw json.RawMessage
}

// UnmarshalJSON keeps data as is. It never fails on unexpected field types.
func (s *Station) UnmarshalJSON(data []byte) error {
	s.Raw = append(json.RawMessage(nil), data...)
	s.ID, s.Name = "", ""

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	_ = json.Unmarshal(fields["id"], &s.ID)
	_ = json.Unmarshal(fields["name"], &s.Name)
	return nil
}

// MarshalJSON returns Raw, or ID and Name for stations built in code
func (s Station) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(s.Raw)) > 0 {
		return s.Raw, nil
	}

	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{s.ID, s.Name})
}
