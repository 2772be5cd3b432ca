// Package convert maps OpenAPI 3.0 Schema Objects onto baseline JSON Schema
// (draft-04 vocabulary).
//
// It deep-copies the input, rewrites nullable types, applies numeric format
// ranges and drops keywords JSON Schema has no equivalent for unless the
// caller asks to keep them. Unexpected shapes are copied through untouched.
package convert

import (
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
)

// DraftURI is the $schema value written on the converted root.
const DraftURI = "http://json-schema.org/draft-04/schema#"

// BytePattern replaces format "byte" (base64 content).
const BytePattern = `^[\w\d+\/=]*$`

// NotSupported lists OpenAPI keywords without a JSON Schema equivalent.
var NotSupported = []string{
	"nullable",
	"discriminator",
	"readOnly",
	"writeOnly",
	"xml",
	"externalDocs",
	"example",
	"deprecated",
}

// structs are keywords holding one schema or a list of schemas.
var structs = []string{"allOf", "anyOf", "oneOf", "not", "items", "additionalProperties"}

// Options controls the conversion.
type Options struct {
	// KeepNotSupported names keywords from NotSupported to retain.
	KeepNotSupported []string
	// DefinitionKeywords names keywords holding a map of schemas
	// (for example "definitions") that are converted as well.
	DefinitionKeywords []string
	// DateToDateTime rewrites format "date" to "date-time".
	DateToDateTime bool
	// SupportPatternProperties renames x-patternProperties to patternProperties.
	SupportPatternProperties bool
	// RemoveReadOnly drops properties marked readOnly.
	RemoveReadOnly bool
	// RemoveWriteOnly drops properties marked writeOnly.
	RemoveWriteOnly bool
}

func (o Options) drop() []string {
	out := make([]string, 0, len(NotSupported))
	for _, k := range NotSupported {
		if !slices.Contains(o.KeepNotSupported, k) {
			out = append(out, k)
		}
	}
	return out
}

// Schema converts v and returns the converted copy; v is never modified.
// Object roots carry "$schema": DraftURI.
func Schema(v any, opts Options) any {
	out := Clone(v)
	m, ok := out.(map[string]any)
	if !ok {
		return out
	}
	c := converter{opts: opts, drop: opts.drop()}
	m = c.schema(m)
	m["$schema"] = DraftURI
	return m
}

type converter struct {
	opts Options
	drop []string
}

func (c converter) schema(s map[string]any) map[string]any {
	for _, kw := range c.opts.DefinitionKeywords {
		if defs, ok := s[kw].(map[string]any); ok {
			for name, d := range defs {
				if dm, ok := d.(map[string]any); ok {
					defs[name] = c.schema(dm)
				}
			}
		}
	}
	for _, kw := range structs {
		switch t := s[kw].(type) {
		case []any:
			for i, e := range t {
				if em, ok := e.(map[string]any); ok {
					t[i] = c.schema(em)
				}
			}
		case map[string]any:
			s[kw] = c.schema(t)
		}
	}
	if props, ok := s["properties"].(map[string]any); ok {
		c.properties(s, props)
	}
	convertTypes(s)
	c.convertFormat(s)
	if c.opts.SupportPatternProperties {
		if pp, ok := s["x-patternProperties"].(map[string]any); ok {
			for name, p := range pp {
				if pm, ok := p.(map[string]any); ok {
					pp[name] = c.schema(pm)
				}
			}
			s["patternProperties"] = pp
			delete(s, "x-patternProperties")
		}
	}
	for _, kw := range c.drop {
		delete(s, kw)
	}
	return s
}

func (c converter) properties(s, props map[string]any) {
	for name, p := range props {
		pm, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if (c.opts.RemoveReadOnly && pm["readOnly"] == true) || (c.opts.RemoveWriteOnly && pm["writeOnly"] == true) {
			delete(props, name)
			continue
		}
		props[name] = c.schema(pm)
	}
	if req, ok := s["required"].([]any); ok {
		kept := req[:0]
		for _, r := range req {
			if name, ok := r.(string); ok {
				if _, present := props[name]; !present {
					continue
				}
			}
			kept = append(kept, r)
		}
		if len(kept) == 0 {
			delete(s, "required")
		} else {
			s["required"] = kept
		}
	}
	if len(props) == 0 {
		delete(s, "properties")
	}
}

// convertTypes turns `nullable: true` into a "null" type member.
func convertTypes(s map[string]any) {
	t, ok := s["type"]
	if !ok || s["nullable"] != true {
		return
	}
	s["type"] = []any{t, "null"}
	if enum, ok := s["enum"].([]any); ok && !hasNull(enum) {
		s["enum"] = append(enum, nil)
	}
}

func hasNull(vs []any) bool {
	for _, v := range vs {
		if v == nil {
			return true
		}
	}
	return false
}

type numRange struct{ min, max json.Number }

var formatRanges = map[string]numRange{
	"int32":  {min: "-2147483648", max: "2147483647"},
	"int64":  {min: "-9223372036854775808", max: "9223372036854775807"},
	"float":  {min: "-3.402823669209385e+38", max: "3.402823669209385e+38"},
	"double": {min: "-1.7976931348623157e+308", max: "1.7976931348623157e+308"},
}

func (c converter) convertFormat(s map[string]any) {
	format, _ := s["format"].(string)
	switch format {
	case "date":
		if c.opts.DateToDateTime {
			s["format"] = "date-time"
		}
	case "byte":
		s["pattern"] = BytePattern
	case "int32", "int64", "float", "double":
		r := formatRanges[format]
		if cur, ok := number(s["minimum"]); !ok || cur < mustFloat(r.min) {
			s["minimum"] = r.min
		}
		if cur, ok := number(s["maximum"]); !ok || cur > mustFloat(r.max) {
			s["maximum"] = r.max
		}
	}
}

// number reads the JSON-like numeric representations produced by decoders.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func mustFloat(n json.Number) float64 {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		panic("convert: bad range constant " + string(n))
	}
	return f
}

// Clone deep-copies a JSON-like tree. Maps and slices are copied; other values
// are shared.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Clone(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Clone(t[i])
		}
		return out
	default:
		return v
	}
}
