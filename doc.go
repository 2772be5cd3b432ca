// Package oaschema provides an OpenAPI 3.0 Schema Object parser for hosts that
// embed schema fragments of several dialects (for example AsyncAPI message
// payloads):
//
// - Validate checks a fragment against the Schema Object meta-schema and
// reports every violation as a Diagnostic addressed in the host document
// - Parse rewrites a fragment into a canonical JSON Schema tree
// - MimeTypes declares the schema formats the parser answers for
//
// Design policy:
// - Keep the host-facing API in the root package; the meta-schema lives in
// metaschema/, keyword conversion in convert/ and the rewrite walk in
// normalize/.
// - Conformance problems are data (diagnostics), not errors.
//
// Typical usage:
//
//	p := oaschema.OpenAPISchemaParser()
//	ds, err := p.Validate(ctx, oaschema.ValidateInput{Data: payload, Path: oaschema.Path{"channels", "user"}})
//	js, err := p.Parse(ctx, oaschema.ParseInput{Data: payload})
package oaschema
