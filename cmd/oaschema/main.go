package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/oaschema"
	"github.com/reoring/oaschema/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var code int
	switch os.Args[1] {
	case "validate":
		code = validateCmd(os.Args[2:], os.Stdout)
	case "parse":
		code = parseCmd(os.Args[2:], os.Stdout)
	case "mimetypes":
		for _, mt := range oaschema.MimeTypes() {
			fmt.Println(mt)
		}
	default:
		usage()
		code = 2
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "oaschema CLI\n\nUsage:\n  oaschema validate [-format F] [-pointer /json/pointer] [-lang en|ja] [-v] file\n  oaschema parse [-format F] [-pointer /json/pointer] [-date-time] [-v] file\n  oaschema mimetypes\n\nNotes:\n  - file may be JSON or YAML; \"-\" reads stdin.\n  - -pointer selects the schema fragment inside a larger document; diagnostics are reported relative to the document root.")
}

type common struct {
	format  string
	pointer string
	verbose bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", oaschema.MimeType, "schema format of the input")
	fs.StringVar(&c.pointer, "pointer", "", "JSON pointer of the schema fragment inside the document")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logs")
}

func (c *common) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// load reads the document and resolves the fragment selected by -pointer.
func (c *common) load(args []string) (any, oaschema.Path, error) {
	if len(args) != 1 {
		return nil, nil, fmt.Errorf("expected exactly one input file, got %d", len(args))
	}
	var b []byte
	var err error
	if args[0] == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, nil, err
	}
	if c.pointer == "" {
		return b, oaschema.Path{}, nil
	}
	// The whole document is decoded; only the fragment is handed over.
	raw, err := oaschema.Decode(b, c.format)
	if err != nil {
		return nil, nil, err
	}
	path := oaschema.ParsePath(c.pointer)
	frag, err := resolve(raw, path)
	if err != nil {
		return nil, nil, err
	}
	return frag, path, nil
}

func validateCmd(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var c common
	var lang string
	c.register(fs)
	fs.StringVar(&lang, "lang", "en", "message language (en, ja)")
	_ = fs.Parse(args)
	i18n.SetLanguage(lang)
	log := c.logger()

	data, path, err := c.load(fs.Args())
	if err != nil {
		log.Error("load input", "err", err)
		return 2
	}
	p := oaschema.New(oaschema.Options{Logger: log})
	ds, err := p.Validate(context.Background(), oaschema.ValidateInput{Data: data, Path: path, SchemaFormat: c.format})
	if err != nil {
		log.Error("validate", "err", err)
		return 2
	}
	if err := writeJSON(out, ds); err != nil {
		log.Error("write output", "err", err)
		return 2
	}
	if len(ds) > 0 {
		log.Info("schema is not valid", "diagnostics", len(ds), "err", ds)
		return 1
	}
	return 0
}

func parseCmd(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	var c common
	var dateTime bool
	c.register(fs)
	fs.BoolVar(&dateTime, "date-time", false, "rewrite format date to date-time")
	_ = fs.Parse(args)
	log := c.logger()

	data, _, err := c.load(fs.Args())
	if err != nil {
		log.Error("load input", "err", err)
		return 2
	}
	p := oaschema.New(oaschema.Options{Logger: log, DateToDateTime: dateTime})
	js, err := p.Parse(context.Background(), oaschema.ParseInput{Data: data, SchemaFormat: c.format})
	if err != nil {
		log.Error("parse", "err", err)
		return 2
	}
	if err := writeJSON(out, js); err != nil {
		log.Error("write output", "err", err)
		return 2
	}
	return 0
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// resolve walks path through a decoded document.
func resolve(doc any, path oaschema.Path) (any, error) {
	cur := doc
	for i, c := range path {
		switch t := cur.(type) {
		case map[string]any:
			key := fmt.Sprint(c)
			v, ok := t[key]
			if !ok {
				return nil, fmt.Errorf("pointer: no key %q at %s", key, path[:i].Pointer())
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(fmt.Sprint(c))
			if err != nil || idx < 0 || idx >= len(t) {
				return nil, fmt.Errorf("pointer: bad index %v at %s", c, path[:i].Pointer())
			}
			cur = t[idx]
		default:
			return nil, fmt.Errorf("pointer: cannot descend into scalar at %s", path[:i].Pointer())
		}
	}
	return cur, nil
}
