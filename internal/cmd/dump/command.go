// Package dump provides the "dump" subcommand.
package dump

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/tmxkit/tiledoc"
	"github.com/tmxkit/tiledoc/format/jsonc"
	"github.com/tmxkit/tiledoc/format/xml"
	"github.com/tmxkit/tiledoc/internal/cmd/cli"
	"github.com/tmxkit/tiledoc/value"
	"gopkg.in/yaml.v3"
)

// Options holds the command-line options for the dump command.
type Options struct {
	Output  string
	Lenient bool
	Cast    bool
}

// Run executes the dump command.
func Run(args []string) error {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts Options
	var accOpts cli.AccessorOptions
	accOpts.Register(fs)
	fs.StringVar(&opts.Output, "o", "json", "output format: json, yaml or toml")
	fs.BoolVar(&opts.Lenient, "lenient", false, "accept comments and trailing commas in JSON")
	fs.BoolVar(&opts.Cast, "cast", false, "convert numeric and boolean XML text")

	fs.Usage = func() {
		PrintHelp(stderr)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		PrintHelp(stderr)
		return fmt.Errorf("exactly one path is required")
	}
	encode, ok := encoders[opts.Output]
	if !ok {
		return fmt.Errorf("unknown output format %q", opts.Output)
	}

	acc, release, err := accOpts.Open()
	if err != nil {
		return fmt.Errorf("failed to open accessor: %w", err)
	}
	defer release()

	dopts := []tiledoc.Option{
		tiledoc.WithReporter(cli.NewReporter(stderr, cli.IsTerminal(stderr))),
	}
	if opts.Lenient {
		dopts = append(dopts, tiledoc.WithJSONParser(jsonc.NewParser()))
	}
	if opts.Cast {
		dopts = append(dopts, tiledoc.WithXMLBuilder(xml.NewBuilder(xml.WithCast())))
	}

	path := fs.Arg(0)
	doc := tiledoc.New(acc, dopts...).Build(ctx, path)
	if doc == nil {
		return fmt.Errorf("no document for %q", path)
	}

	out, err := encode(doc.Root)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", opts.Output, err)
	}
	_, err = stdout.Write(out)
	return err
}

var encoders = map[string]func(value.Value) ([]byte, error){
	"json": encodeJSON,
	"yaml": encodeYAML,
	"toml": encodeTOML,
}

func encodeJSON(v value.Value) ([]byte, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeYAML(v value.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeTOML writes the tree as TOML. TOML has no null, so null values are
// dropped, and tables are written with sorted keys.
func encodeTOML(v value.Value) ([]byte, error) {
	if v.Kind() != value.KindMapping {
		return nil, fmt.Errorf("root must be a mapping, got %s", v.Kind())
	}
	return toml.Marshal(dropNulls(v.Any()))
}

func dropNulls(in any) any {
	switch t := in.(type) {
	case map[string]any:
		for k, e := range t {
			if e == nil {
				delete(t, k)
				continue
			}
			t[k] = dropNulls(e)
		}
		return t
	case []any:
		out := t[:0]
		for _, e := range t {
			if e != nil {
				out = append(out, dropNulls(e))
			}
		}
		return out
	}
	return in
}

// PrintHelp prints help for the dump command.
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, `tiledoc dump - Print the document tree of a Tiled asset

Usage:
  tiledoc dump [options] <path>

Options:
  -archive string   Read the path from this zip archive
  -root string      Base directory for relative paths
  -o string         Output format: json, yaml or toml (default "json")
  -lenient          Accept comments and trailing commas in JSON
  -cast             Convert numeric and boolean XML text

XML attributes appear as "-name" keys and element text as "#text".

Examples:
  tiledoc dump maps/level1.tmj
  tiledoc dump -o yaml -archive assets.zip tilesets/terrain.tsx`)
}
