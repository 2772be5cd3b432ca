package oaschema

import (
	"context"
	"log/slog"

	"github.com/reoring/oaschema/metaschema"
	"github.com/reoring/oaschema/normalize"
)

// Content types handled by Parser.
const (
	MimeType     = "application/vnd.oai.openapi;version=3.0.0"
	MimeTypeJSON = "application/vnd.oai.openapi+json;version=3.0.0"
	MimeTypeYAML = "application/vnd.oai.openapi+yaml;version=3.0.0"
)

var mimeTypes = []string{MimeType, MimeTypeJSON, MimeTypeYAML}

// SchemaParser is the contract a host uses to validate and parse schema
// fragments of the content types it declares.
type SchemaParser interface {
	Validate(ctx context.Context, in ValidateInput) (Diagnostics, error)
	Parse(ctx context.Context, in ParseInput) (any, error)
	MimeTypes() []string
}

// ValidateInput is a fragment to check and where it lives in the host document.
type ValidateInput struct {
	// Data is a decoded JSON-like value, or raw JSON/YAML as []byte, string
	// or json.RawMessage.
	Data any
	// Path locates Data in the host document; diagnostics are prefixed with it.
	Path Path
	// SchemaFormat selects the raw decoding (YAML for MimeTypeYAML). Optional.
	SchemaFormat string
}

// ParseInput is a fragment to normalize.
type ParseInput struct {
	Data         any
	SchemaFormat string
}

// Options configures a Parser.
type Options struct {
	// Logger receives debug records; nil discards them.
	Logger *slog.Logger
	// DateToDateTime rewrites format "date" to "date-time" when parsing.
	DateToDateTime bool
}

// Parser validates and normalizes OpenAPI 3.0 Schema Objects.
// It is stateless and safe for concurrent use.
type Parser struct {
	log  *slog.Logger
	norm normalize.Options
}

var _ SchemaParser = (*Parser)(nil)

// New returns a Parser configured by opts.
func New(opts Options) *Parser {
	l := opts.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Parser{log: l, norm: normalize.Options{DateToDateTime: opts.DateToDateTime}}
}

// OpenAPISchemaParser returns a Parser with default options.
func OpenAPISchemaParser() *Parser { return New(Options{}) }

// Validate checks in.Data against the Schema Object meta-schema. A conformant
// fragment yields an empty list. The error reports cancellation, undecodable
// raw input or a broken meta-schema, never a conformance problem.
func (p *Parser) Validate(ctx context.Context, in ValidateInput) (Diagnostics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := decodeData(in.Data, in.SchemaFormat)
	if err != nil {
		return nil, err
	}
	vs, err := metaschema.Check(data)
	if err != nil {
		return nil, err
	}
	ds := TranslateViolations(in.Path, vs)
	p.log.DebugContext(ctx, "validated schema fragment", "path", in.Path.Pointer(), "diagnostics", len(ds))
	return ds, nil
}

// Parse returns the canonical JSON Schema form of in.Data. The input value
// is not modified.
func (p *Parser) Parse(ctx context.Context, in ParseInput) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := decodeData(in.Data, in.SchemaFormat)
	if err != nil {
		return nil, err
	}
	out := normalize.SchemaWith(data, p.norm)
	p.log.DebugContext(ctx, "normalized schema fragment", "format", in.SchemaFormat)
	return out, nil
}

// MimeTypes returns the content types this parser handles.
func (p *Parser) MimeTypes() []string { return MimeTypes() }

// MimeTypes returns the content types handled by Parser.
func MimeTypes() []string { return append([]string(nil), mimeTypes...) }
