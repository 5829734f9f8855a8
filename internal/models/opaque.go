package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var fieldNameCache sync.Map // reflect.Type -> []string

// jsonFieldNames returns the JSON keys claimed by the exported fields of t
func jsonFieldNames(t reflect.Type) []string {
	if cached, ok := fieldNameCache.Load(t); ok {
		return cached.([]string)
	}

	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		names = append(names, name)
	}

	fieldNameCache.Store(t, names)
	return names
}

// decodeWithExtra decodes data into known and returns every key that no
// field of known claimed. Keys are claimed case-insensitively, matching
// encoding/json. A claimed key holding null is kept so it is written back.
// known must be a pointer to a struct.
func decodeWithExtra(data []byte, known any) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	names := jsonFieldNames(reflect.TypeOf(known).Elem())
	for key, value := range all {
		if isNull(value) {
			continue
		}
		for _, name := range names {
			if strings.EqualFold(key, name) {
				delete(all, key)
				break
			}
		}
	}

	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func isNull(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}

// encodeWithExtra encodes known and merges extra into the resulting object.
// Typed fields win over sidecar keys of the same name.
func encodeWithExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	for key, value := range extra {
		if _, ok := all[key]; !ok {
			all[key] = value
		}
	}

	return json.Marshal(all)
}
