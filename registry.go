package oaschema

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownSchemaFormat is returned when no parser handles a schema format.
var ErrUnknownSchemaFormat = errors.New("oaschema: unknown schema format")

// Registry routes fragments to the SchemaParser registered for their schema
// format. The zero value is ready to use and safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]SchemaParser
}

// NewRegistry returns a Registry with the given parsers registered.
func NewRegistry(parsers ...SchemaParser) *Registry {
	r := &Registry{}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// Register makes p the handler of every content type it declares. Later
// registrations replace earlier ones for the same content type.
func (r *Registry) Register(p SchemaParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsers == nil {
		r.parsers = make(map[string]SchemaParser)
	}
	for _, mt := range p.MimeTypes() {
		r.parsers[mt] = p
	}
}

// Lookup returns the parser registered for format.
func (r *Registry) Lookup(format string) (SchemaParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[format]
	return p, ok
}

// Formats lists the registered schema formats in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.parsers))
	for f := range r.parsers {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Validate dispatches to the parser registered for format.
func (r *Registry) Validate(ctx context.Context, format string, in ValidateInput) (Diagnostics, error) {
	p, ok := r.Lookup(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchemaFormat, format)
	}
	if in.SchemaFormat == "" {
		in.SchemaFormat = format
	}
	return p.Validate(ctx, in)
}

// Parse dispatches to the parser registered for format.
func (r *Registry) Parse(ctx context.Context, format string, in ParseInput) (any, error) {
	p, ok := r.Lookup(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchemaFormat, format)
	}
	if in.SchemaFormat == "" {
		in.SchemaFormat = format
	}
	return p.Parse(ctx, in)
}
