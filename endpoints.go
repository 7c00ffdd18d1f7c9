package xjdp

import (
	"context"
	"encoding/json"
)

const (
	timelinePath = "timeline.json"
	globalPath   = "global.json"
)

// Timeline fetches timeline.json: the service's ordered sequence of event
// records. Records are returned undecoded beyond the list structure.
func (c *httpClient) Timeline(ctx context.Context) ([]json.RawMessage, error) {
	raw, err := c.Get(ctx, timelinePath)
	if err != nil {
		return nil, err
	}
	var events []json.RawMessage
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return events, nil
}

// Global fetches global.json: the service's aggregate summary values,
// keyed by metric name and returned undecoded.
func (c *httpClient) Global(ctx context.Context) (map[string]json.RawMessage, error) {
	raw, err := c.Get(ctx, globalPath)
	if err != nil {
		return nil, err
	}
	var stats map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return stats, nil
}
