package oaschema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/oaschema"
	"github.com/reoring/oaschema/metaschema"
)

func TestTranslateViolations_PathPrefixing(t *testing.T) {
	prefix := oaschema.Path{"channels", "myChannel"}
	got := oaschema.TranslateViolations(prefix, []metaschema.Violation{
		{InstancePointer: "/properties/name/type", Message: "must be equal to one of the allowed values"},
		{InstancePointer: "", Message: "must NOT have additional properties"},
		{InstancePointer: "/properties/a~1b~0c", Message: "escaped"},
	})
	want := oaschema.Diagnostics{
		{Message: "must be equal to one of the allowed values", Path: oaschema.Path{"channels", "myChannel", "properties", "name", "type"}},
		{Message: "must NOT have additional properties", Path: oaschema.Path{"channels", "myChannel"}},
		{Message: "escaped", Path: oaschema.Path{"channels", "myChannel", "properties", "a/b~c"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(oaschema.Path{"channels", "myChannel"}, prefix); diff != "" {
		t.Fatalf("prefix mutated:\n%s", diff)
	}
}

func TestTranslateViolations_Empty(t *testing.T) {
	got := oaschema.TranslateViolations(oaschema.Path{"a"}, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestParsePath(t *testing.T) {
	cases := map[string]oaschema.Path{
		"":                           {},
		"channels/myChannel/0":       {"channels", "myChannel", 0},
		"/components/messages/test/": {"components", "messages", "test"},
		"channels.user.payload":      {"channels", "user", "payload"},
		"/":                          {},
		"/components.schemas/A":      {"components.schemas", "A"},
		"/paths/~1users~0v1/get":     {"paths", "/users~v1", "get"},
		"/responses/200/007":         {"responses", 200, "007"},
	}
	for in, want := range cases {
		if diff := cmp.Diff(want, oaschema.ParsePath(in)); diff != "" {
			t.Fatalf("ParsePath(%q) (-want +got):\n%s", in, diff)
		}
	}
}

func TestPathPointer(t *testing.T) {
	if got := (oaschema.Path{"a/b", 2, "c~d"}).Pointer(); got != "/a~1b/2/c~0d" {
		t.Fatalf("unexpected pointer %q", got)
	}
	if got := (oaschema.Path{}).Pointer(); got != "" {
		t.Fatalf("unexpected pointer %q", got)
	}
}

func TestDiagnostics_Error(t *testing.T) {
	ds := oaschema.Diagnostics{
		{Message: "m1", Path: oaschema.Path{"a"}},
		{Message: "m2", Path: oaschema.Path{"b"}},
		{Message: "m3", Path: oaschema.Path{"c"}},
		{Message: "m4", Path: oaschema.Path{"d"}},
	}
	msg := ds.Error()
	if !strings.HasPrefix(msg, "m1 at /a; m2 at /b; m3 at /c") || !strings.Contains(msg, "total 4") {
		t.Fatalf("unexpected summary %q", msg)
	}
	if (oaschema.Diagnostics{}).Error() != "" {
		t.Fatalf("empty diagnostics should summarize to empty string")
	}
}
