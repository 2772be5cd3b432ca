package normalize_test

import (
	"os"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/reoring/oaschema/normalize"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestSchema_Fixture(t *testing.T) {
	in, err := os.ReadFile("../testdata/valid.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var msg struct {
		Payload any `json:"payload"`
	}
	if err := json.Unmarshal(in, &msg); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	want := decode(t, `{"type":["object","null"],"properties":{"name":{"type":"string"},"discriminatorTest":{"discriminator":{"propertyName":"objectType"},"oneOf":[{"type":"object","properties":{"objectType":{"type":"string"},"prop1":{"type":"string"}}},{"type":"object","properties":{"objectType":{"type":"string"},"prop2":{"type":"string"}}}]},"test":{"type":"object","properties":{"testing":{"type":"string"}}}},"examples":[{"name":"Fran"}]}`)
	if diff := cmp.Diff(want, normalize.Schema(msg.Payload)); diff != "" {
		t.Fatalf("normalized mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_ExampleMigration(t *testing.T) {
	got := normalize.Schema(decode(t, `{"example":"Fran"}`))
	want := decode(t, `{"examples":["Fran"]}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	// existing examples come first
	got = normalize.Schema(decode(t, `{"examples":["a","b"],"example":"c"}`))
	want = decode(t, `{"examples":["a","b","c"]}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	// a null example is still an example
	got = normalize.Schema(decode(t, `{"example":null}`))
	want = decode(t, `{"examples":[null]}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSchema_XMLAliasing(t *testing.T) {
	in := decode(t, `{
		"xml": {"name": "root"},
		"properties": {
			"a": {"type": "string", "xml": {"name": "x"}},
			"b": {"allOf": [{"xml": {"attribute": true}, "properties": {"c": {"xml": {"name": "deep"}}}}]},
			"d": {"oneOf": [{"xml": {"name": "one"}}, true]}
		},
		"patternProperties": {"^p": {"xml": {"prefix": "p"}}},
		"additionalProperties": {"xml": {"name": "ap"}},
		"items": {"xml": {"wrapped": true}},
		"not": {"xml": {"name": "no"}}
	}`)
	want := decode(t, `{
		"xml": {"name": "root"},
		"properties": {
			"a": {"type": "string", "x-xml": {"name": "x"}},
			"b": {"allOf": [{"x-xml": {"attribute": true}, "properties": {"c": {"x-xml": {"name": "deep"}}}}]},
			"d": {"oneOf": [{"x-xml": {"name": "one"}}, true]}
		},
		"patternProperties": {"^p": {"x-xml": {"prefix": "p"}}},
		"additionalProperties": {"x-xml": {"name": "ap"}},
		"items": {"x-xml": {"wrapped": true}},
		"not": {"x-xml": {"name": "no"}}
	}`)
	if diff := cmp.Diff(want, normalize.Schema(in)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSchema_NestedSlots(t *testing.T) {
	in := decode(t, `{
		"type": "array",
		"items": [{"example": 1}, {"type": "string", "nullable": true}],
		"additionalItems": {"example": 2},
		"anyOf": [{"example": 3}],
		"additionalProperties": false
	}`)
	want := decode(t, `{
		"type": "array",
		"items": [{"examples": [1]}, {"type": ["string", "null"]}],
		"additionalItems": {"examples": [2]},
		"anyOf": [{"examples": [3]}],
		"additionalProperties": false
	}`)
	if diff := cmp.Diff(want, normalize.Schema(in)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSchema_Idempotent(t *testing.T) {
	inputs := []string{
		`{"type":"object","nullable":true,"example":{"a":1},"properties":{"a":{"type":"integer","format":"int32","xml":{"name":"a"}}}}`,
		`{"oneOf":[{"type":"string","format":"byte"},{"type":"number","format":"double","example":1.5}],"readOnly":true}`,
		`{"type":"string","enum":["a","b"],"nullable":true,"deprecated":true,"externalDocs":{"url":"https://example.com"}}`,
		`{"items":{"items":{"example":"x","xml":{"wrapped":true}}}}`,
	}
	for _, s := range inputs {
		once := normalize.Schema(decode(t, s))
		twice := normalize.Schema(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("not idempotent for %s (-once +twice):\n%s", s, diff)
		}
	}
}

func TestSchema_DoesNotMutateInput(t *testing.T) {
	in := decode(t, `{"example":"x","properties":{"a":{"xml":{"name":"a"},"nullable":true,"type":"string"}}}`)
	snapshot := decode(t, `{"example":"x","properties":{"a":{"xml":{"name":"a"},"nullable":true,"type":"string"}}}`)
	_ = normalize.Schema(in)
	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSchema_NonObjectInput(t *testing.T) {
	if got := normalize.Schema(true); got != true {
		t.Fatalf("boolean schema should pass through, got %v", got)
	}
	if got := normalize.Schema(nil); got != nil {
		t.Fatalf("nil should pass through, got %v", got)
	}
}

func TestSchemaWith_DateToDateTime(t *testing.T) {
	got := normalize.SchemaWith(decode(t, `{"type":"string","format":"date"}`), normalize.Options{DateToDateTime: true})
	want := decode(t, `{"type":"string","format":"date-time"}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
