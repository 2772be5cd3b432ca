package oaschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/oaschema/metaschema"
)

// Path addresses a value inside the host document. Components are strings
// (object keys) or ints (array indices).
type Path []any

// Pointer renders the path as a JSON Pointer.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range p {
		b.WriteByte('/')
		s := fmt.Sprint(c)
		s = strings.ReplaceAll(s, "~", "~0")
		b.WriteString(strings.ReplaceAll(s, "/", "~1"))
	}
	return b.String()
}

// ParsePath parses a JSON Pointer ("/paths/~1users/0") or, without a leading
// slash, a slash or dot separated path ("channels/user/0", "channels.user.0").
// A trailing slash is ignored. Canonical integer components become ints.
func ParsePath(s string) Path {
	var parts []string
	switch {
	case strings.HasPrefix(s, "/"):
		parts = pointerSegments(strings.TrimSuffix(s, "/"))
	case strings.Trim(s, "/.") == "":
	case strings.Contains(s, "/"):
		parts = strings.Split(strings.Trim(s, "/"), "/")
	default:
		parts = strings.Split(strings.Trim(s, "."), ".")
	}
	out := make(Path, 0, len(parts))
	for _, p := range parts {
		if i, err := strconv.Atoi(p); err == nil && strconv.Itoa(i) == p {
			out = append(out, i)
			continue
		}
		out = append(out, p)
	}
	return out
}

// Diagnostic reports one non-conformant part of a schema fragment.
type Diagnostic struct {
	Message string `json:"message"`
	Path    Path   `json:"path"`
}

// Diagnostics is the list Validate returns. It implements error so a caller
// can treat a non-empty list as a failure.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(ds), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", ds[i].Message, ds[i].Path.Pointer())
	}
	if len(ds) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(ds))
	}
	return b.String()
}

// TranslateViolations converts meta-schema violations into diagnostics whose
// paths start with prefix followed by the violation's pointer segments.
// It returns an empty, non-nil slice for no violations and never modifies
// prefix.
func TranslateViolations(prefix Path, vs []metaschema.Violation) Diagnostics {
	out := make(Diagnostics, 0, len(vs))
	for _, v := range vs {
		segs := pointerSegments(v.InstancePointer)
		p := make(Path, 0, len(prefix)+len(segs))
		p = append(p, prefix...)
		for _, s := range segs {
			p = append(p, s)
		}
		out = append(out, Diagnostic{Message: v.Message, Path: p})
	}
	return out
}

// pointerSegments splits a JSON Pointer into unescaped segments. The empty
// segment produced by the leading slash is dropped.
func pointerSegments(ptr string) []string {
	if ptr == "" {
		return nil
	}
	segs := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, s := range segs {
		s = strings.ReplaceAll(s, "~1", "/")
		segs[i] = strings.ReplaceAll(s, "~0", "~")
	}
	return segs
}
