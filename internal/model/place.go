package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when an upstream suggestion entry is not a
// JSON object. A malformed entry is skipped; it never aborts the batch.
var ErrMalformedRecord = errors.New("malformed place record")

// PlaceRecord is one normalized geocoding result. Values are immutable once
// parsed; equality is structural over the three fields.
type PlaceRecord struct {
	Name    string `json:"name"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
}

// DisplayLabel returns the human-readable form shown in the suggestion list,
// "Name, State, Country" when a state is present, "Name, Country" otherwise.
func (p PlaceRecord) DisplayLabel() string {
	if p.State != "" {
		return fmt.Sprintf("%s, %s, %s", p.Name, p.State, p.Country)
	}
	return fmt.Sprintf("%s, %s", p.Name, p.Country)
}

// QueryKey returns the comma-joined lookup key used for the weather fetch.
// Unlike DisplayLabel it carries no spaces after the commas.
func (p PlaceRecord) QueryKey() string {
	if p.State != "" {
		return fmt.Sprintf("%s,%s,%s", p.Name, p.State, p.Country)
	}
	return fmt.Sprintf("%s,%s", p.Name, p.Country)
}

// ParsePlaceRecord builds a PlaceRecord from one raw upstream entry.
// Missing fields default to empty strings; only a non-object entry fails.
func ParsePlaceRecord(raw json.RawMessage) (PlaceRecord, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return PlaceRecord{}, ErrMalformedRecord
	}

	return PlaceRecord{
		Name:    stringField(fields, "name"),
		State:   stringField(fields, "state"),
		Country: stringField(fields, "country"),
	}, nil
}

// ParsePlaceRecords parses an upstream response body (a JSON array of
// objects) in response order. Malformed entries are dropped, the rest of the
// batch is kept.
func ParsePlaceRecords(body []byte) ([]PlaceRecord, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	records := make([]PlaceRecord, 0, len(entries))
	for _, entry := range entries {
		record, err := ParsePlaceRecord(entry)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
