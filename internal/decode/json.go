// Package decode turns raw schema documents into JSON-like Go values
// (map[string]any, []any, string, bool, nil and json.Number).
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// JSON decodes a single JSON document. Numbers are kept as json.Number so
// integer and decimal spellings survive a round trip.
func JSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode: invalid JSON: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode: invalid JSON: trailing data after document")
	}
	return v, nil
}
