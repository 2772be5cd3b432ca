// Package metaschema holds the OpenAPI 3.0 Schema Object meta-schema and the
// validator compiled from it.
//
// The validator is built once per process on first use and shared by every
// caller afterwards. It reports every violated constraint of a document, not
// only the first one.
package metaschema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/dlclark/regexp2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ID is the identifier the meta-schema is registered under.
const ID = "https://spec.openapis.org/oas/3.0/schema-object.json"

//go:embed openapi-3.0-schema-object.json
var schemaJSON []byte

// Source returns a copy of the raw meta-schema document.
func Source() []byte { return bytes.Clone(schemaJSON) }

var validator = sync.OnceValues(compile)

// Validator returns the memoized validator bound to the meta-schema. The
// first call compiles it; an error means the embedded meta-schema is broken
// and is returned to every caller.
func Validator() (*jsonschema.Schema, error) { return validator() }

// MustValidator is like Validator but panics on a construction fault.
func MustValidator() *jsonschema.Schema {
	sch, err := Validator()
	if err != nil {
		panic(err)
	}
	return sch
}

func compile() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("metaschema: decode: %w", err)
	}
	c := jsonschema.NewCompiler()
	// Meta-schema declares no $schema; draft-07 keeps the numeric
	// exclusiveMinimum on multipleOf meaningful.
	c.DefaultDraft(jsonschema.Draft7)
	c.AssertFormat()
	// Schema Object patterns use ECMA-262 syntax (lookaround, backreferences).
	c.UseRegexpEngine(ecmaCompile)
	if err := c.AddResource(ID, doc); err != nil {
		return nil, fmt.Errorf("metaschema: register %s: %w", ID, err)
	}
	sch, err := c.Compile(ID)
	if err != nil {
		return nil, fmt.Errorf("metaschema: compile %s: %w", ID, err)
	}
	return sch, nil
}

// ecmaRegexp adapts regexp2 to the validator's regexp engine.
type ecmaRegexp regexp2.Regexp

func (re *ecmaRegexp) MatchString(s string) bool {
	ok, err := (*regexp2.Regexp)(re).MatchString(s)
	return err == nil && ok
}

func (re *ecmaRegexp) String() string { return (*regexp2.Regexp)(re).String() }

func ecmaCompile(s string) (jsonschema.Regexp, error) {
	re, err := regexp2.Compile(s, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	return (*ecmaRegexp)(re), nil
}
