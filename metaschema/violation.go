package metaschema

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reoring/oaschema/i18n"
)

// Violation is a single violated constraint of the meta-schema.
type Violation struct {
	// InstancePointer locates the offending value inside the checked document
	// (JSON Pointer, "" for the document root).
	InstancePointer string
	// Keyword is the meta-schema keyword that failed (for example "enum").
	Keyword string
	Message string
	// Params carries keyword parameters used to render Message.
	Params map[string]string
}

// Check validates doc against the meta-schema. It returns nil violations when
// doc conforms. The error is non-nil only when the validator could not be
// built or doc is not a JSON-like value.
func Check(doc any) ([]Violation, error) {
	sch, err := Validator()
	if err != nil {
		return nil, err
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("metaschema: validate: %w", err)
	}
	if _, ok := ve.ErrorKind.(*kind.InvalidJsonValue); ok {
		return nil, fmt.Errorf("metaschema: %w", ve)
	}
	return Flatten(ve), nil
}

// Flatten converts an engine error tree into violations. Each branch reports
// its leaf violations before the composite keyword (oneOf, anyOf, not) that
// failed because of them; siblings are ordered by instance location.
func Flatten(ve *jsonschema.ValidationError) []Violation {
	if ve == nil {
		return nil
	}
	return flatten(ve, nil)
}

func flatten(ve *jsonschema.ValidationError, out []Violation) []Violation {
	causes := slices.Clone(ve.Causes)
	slices.SortStableFunc(causes, func(a, b *jsonschema.ValidationError) int {
		return compareLocation(a.InstanceLocation, b.InstanceLocation)
	})
	for _, c := range causes {
		out = flatten(c, out)
	}
	return append(out, violationsOf(ve)...)
}

var fallbackPrinter = message.NewPrinter(language.English)

func violationsOf(ve *jsonschema.ValidationError) []Violation {
	ptr := pointer(ve.InstanceLocation)
	one := func(keyword string, params map[string]string) []Violation {
		return []Violation{{InstancePointer: ptr, Keyword: keyword, Message: i18n.T(keyword, params), Params: params}}
	}
	switch k := ve.ErrorKind.(type) {
	case *kind.Schema, *kind.Group, *kind.Reference, *kind.AllOf:
		if len(ve.Causes) > 0 {
			return nil
		}
	case *kind.OneOf:
		return one("oneOf", nil)
	case *kind.AnyOf:
		return one("anyOf", nil)
	case *kind.Not:
		return one("not", nil)
	case *kind.FalseSchema:
		return one("false schema", nil)
	case *kind.Type:
		return one("type", map[string]string{"type": strings.Join(k.Want, ",")})
	case *kind.Enum:
		return one("enum", nil)
	case *kind.Const:
		return one("const", nil)
	case *kind.Required:
		out := make([]Violation, 0, len(k.Missing))
		for _, p := range k.Missing {
			out = append(out, one("required", map[string]string{"property": p})...)
		}
		return out
	case *kind.AdditionalProperties:
		out := make([]Violation, 0, len(k.Properties))
		for _, p := range k.Properties {
			out = append(out, one("additionalProperties", map[string]string{"additionalProperty": p})...)
		}
		return out
	case *kind.Format:
		return one("format", map[string]string{"format": k.Want})
	case *kind.Pattern:
		return one("pattern", map[string]string{"pattern": k.Want})
	case *kind.Minimum:
		return one("minimum", map[string]string{"limit": ratString(k.Want)})
	case *kind.Maximum:
		return one("maximum", map[string]string{"limit": ratString(k.Want)})
	case *kind.ExclusiveMinimum:
		return one("exclusiveMinimum", map[string]string{"limit": ratString(k.Want)})
	case *kind.ExclusiveMaximum:
		return one("exclusiveMaximum", map[string]string{"limit": ratString(k.Want)})
	case *kind.MultipleOf:
		return one("multipleOf", map[string]string{"multipleOf": ratString(k.Want)})
	case *kind.MinLength:
		return one("minLength", map[string]string{"limit": strconv.Itoa(k.Want)})
	case *kind.MaxLength:
		return one("maxLength", map[string]string{"limit": strconv.Itoa(k.Want)})
	case *kind.MinItems:
		return one("minItems", map[string]string{"limit": strconv.Itoa(k.Want)})
	case *kind.MaxItems:
		return one("maxItems", map[string]string{"limit": strconv.Itoa(k.Want)})
	case *kind.MinProperties:
		return one("minProperties", map[string]string{"limit": strconv.Itoa(k.Want)})
	case *kind.MaxProperties:
		return one("maxProperties", map[string]string{"limit": strconv.Itoa(k.Want)})
	case *kind.UniqueItems:
		return one("uniqueItems", map[string]string{
			"i": strconv.Itoa(k.Duplicates[0]),
			"j": strconv.Itoa(k.Duplicates[1]),
		})
	case *kind.AdditionalItems:
		return one("additionalItems", map[string]string{"count": strconv.Itoa(k.Count)})
	case *kind.Dependency:
		return dependencies(one, k.Prop, k.Missing)
	case *kind.DependentRequired:
		return dependencies(one, k.Prop, k.Missing)
	case *kind.PropertyNames:
		return one("propertyNames", map[string]string{"propertyName": k.Property})
	case *kind.Contains:
		return one("contains", nil)
	}
	if len(ve.Causes) > 0 {
		return nil
	}
	keyword := ""
	if kp := ve.ErrorKind.KeywordPath(); len(kp) > 0 {
		keyword = kp[len(kp)-1]
	}
	return []Violation{{InstancePointer: ptr, Keyword: keyword, Message: ve.ErrorKind.LocalizedString(fallbackPrinter)}}
}

func dependencies(one func(string, map[string]string) []Violation, prop string, missing []string) []Violation {
	out := make([]Violation, 0, len(missing))
	for _, m := range missing {
		out = append(out, one("dependencies", map[string]string{"property": prop, "missing": m})...)
	}
	return out
}

// pointer renders instance location segments as a JSON Pointer.
func pointer(segs []string) string {
	if len(segs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		s = strings.ReplaceAll(s, "~", "~0")
		b.WriteString(strings.ReplaceAll(s, "/", "~1"))
	}
	return b.String()
}

// compareLocation orders locations segment by segment; array indices compare
// numerically and a prefix sorts before its extensions.
func compareLocation(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		ai, aerr := strconv.Atoi(a[i])
		bi, berr := strconv.Atoi(b[i])
		if aerr == nil && berr == nil {
			return ai - bi
		}
		return strings.Compare(a[i], b[i])
	}
	return len(a) - len(b)
}

func ratString(r *big.Rat) string {
	if r == nil {
		return ""
	}
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}
