package oaschema

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/oaschema/internal/decode"
)

// decodeData decodes raw JSON/YAML payloads; decoded values pass through.
func decodeData(data any, format string) (any, error) {
	switch t := data.(type) {
	case []byte:
		return Decode(t, format)
	case json.RawMessage:
		return Decode(t, format)
	case string:
		return Decode([]byte(t), format)
	default:
		return data, nil
	}
}

// Decode turns a raw JSON or YAML document into a JSON-like value. Formats
// with a "+yaml" or "+json" suffix select the syntax; otherwise JSON is tried
// first and YAML second.
func Decode(raw []byte, format string) (any, error) {
	switch {
	case strings.Contains(format, "+yaml"):
		v, err := decode.YAML(raw)
		if err != nil {
			return nil, fmt.Errorf("oaschema: %w", err)
		}
		return v, nil
	case strings.Contains(format, "+json"):
		v, err := decode.JSON(raw)
		if err != nil {
			return nil, fmt.Errorf("oaschema: %w", err)
		}
		return v, nil
	}
	v, jerr := decode.JSON(raw)
	if jerr == nil {
		return v, nil
	}
	// YAML is a superset of JSON; only fall back for documents that are not JSON.
	v, yerr := decode.YAML(raw)
	if yerr != nil {
		return nil, fmt.Errorf("oaschema: %w", yerr)
	}
	return v, nil
}
