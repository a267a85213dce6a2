package hfinference

import (
	"bytes"
	"encoding/json"
	"errors"

	"aidetector/internal/core/detection"
)

// Flatten reads the two shapes the endpoint answers with, a flat
// [{label,score}] list or a nested [[{label,score}]] list, into one slice
// Valid JSON of any other shape is an empty slice; invalid JSON is a
// bad response error
func Flatten(raw []byte) ([]detection.Label, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, detection.BadResponse(errors.New("response is not valid JSON"))
	}

	var flat []detection.Label
	if err := json.Unmarshal(raw, &flat); err == nil {
		return keepLabelled(flat), nil
	}

	var nested [][]detection.Label
	if err := json.Unmarshal(raw, &nested); err == nil {
		out := []detection.Label{}
		for _, inner := range nested {
			out = append(out, keepLabelled(inner)...)
		}
		return out, nil
	}
	return []detection.Label{}, nil
}

// keepLabelled drops entries without a label, e.g. objects of another shape
// that happened to decode into the zero Label
func keepLabelled(in []detection.Label) []detection.Label {
	out := make([]detection.Label, 0, len(in))
	for _, l := range in {
		if l.Label != "" {
			out = append(out, l)
		}
	}
	return out
}
