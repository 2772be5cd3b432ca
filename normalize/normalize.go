// Package normalize rewrites OpenAPI 3.0 Schema Objects into canonical JSON
// Schema trees.
//
// Baseline keyword mapping is delegated to package convert; this package then
// walks every schema slot and applies the OpenAPI specific fixups:
//
//   - a singular "example" is appended to "examples"
//   - "$schema" is removed
//   - "xml" on nested schemas becomes the "x-xml" extension
//
// Normalizing an already normalized tree returns an equal tree.
package normalize

import "github.com/reoring/oaschema/convert"

// KeepKeywords are the OpenAPI keywords retained through conversion.
var KeepKeywords = []string{"discriminator", "readOnly", "writeOnly", "deprecated", "xml", "example"}

// XMLExtension is the key XML metadata of nested schemas is moved to.
const XMLExtension = "x-xml"

// Options tweaks the underlying conversion.
type Options struct {
	// DateToDateTime rewrites format "date" to "date-time".
	DateToDateTime bool
}

// Schema normalizes v with default options. v is never modified.
func Schema(v any) any { return SchemaWith(v, Options{}) }

// SchemaWith normalizes v. Values that are not schema objects are returned
// as converted copies.
func SchemaWith(v any, opts Options) any {
	out := convert.Schema(v, convert.Options{
		KeepNotSupported: KeepKeywords,
		DateToDateTime:   opts.DateToDateTime,
	})
	if m, ok := out.(map[string]any); ok {
		fixup(m)
	}
	return out
}

type cardinality int

const (
	slotSingle cardinality = iota
	slotSeq
	slotMap
)

type slot struct {
	keyword string
	card    cardinality
}

// slots lists the keywords that hold nested schemas, by shape. "items" is
// listed twice: a schema, or a tuple of schemas.
var slots = []slot{
	{"properties", slotMap},
	{"patternProperties", slotMap},
	{"additionalProperties", slotSingle},
	{"items", slotSingle},
	{"items", slotSeq},
	{"additionalItems", slotSingle},
	{"oneOf", slotSeq},
	{"anyOf", slotSeq},
	{"allOf", slotSeq},
	{"not", slotSingle},
}

func fixup(s map[string]any) {
	if ex, ok := s["example"]; ok {
		examples, _ := s["examples"].([]any)
		s["examples"] = append(examples, ex)
		delete(s, "example")
	}
	delete(s, "$schema")

	for _, sl := range slots {
		switch sl.card {
		case slotSingle:
			if sub, ok := s[sl.keyword].(map[string]any); ok {
				nested(sub)
			}
		case slotSeq:
			if seq, ok := s[sl.keyword].([]any); ok {
				for _, e := range seq {
					if sub, ok := e.(map[string]any); ok {
						nested(sub)
					}
				}
			}
		case slotMap:
			if m, ok := s[sl.keyword].(map[string]any); ok {
				for _, e := range m {
					if sub, ok := e.(map[string]any); ok {
						nested(sub)
					}
				}
			}
		}
	}
}

// nested applies the fixups of a schema reached through a slot.
func nested(s map[string]any) {
	if x, ok := s["xml"]; ok {
		s[XMLExtension] = x
		delete(s, "xml")
	}
	fixup(s)
}
