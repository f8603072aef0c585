// Package detect provides the "detect" subcommand.
package detect

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tmxkit/tiledoc"
	"github.com/tmxkit/tiledoc/internal/cmd/cli"
)

// Run executes the detect command.
func Run(args []string) error {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var accOpts cli.AccessorOptions
	accOpts.Register(fs)

	fs.Usage = func() {
		PrintHelp(stderr)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		PrintHelp(stderr)
		return fmt.Errorf("at least one path is required")
	}

	acc, release, err := accOpts.Open()
	if err != nil {
		return fmt.Errorf("failed to open accessor: %w", err)
	}
	defer release()

	d := tiledoc.New(acc, tiledoc.WithReporter(cli.NewReporter(stderr, cli.IsTerminal(stderr))))

	failed := 0
	for _, path := range fs.Args() {
		f, method, err := d.Classify(ctx, path)
		if err != nil {
			failed++
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", path, f, method)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d paths could not be classified", failed, fs.NArg())
	}
	return nil
}

// PrintHelp prints help for the detect command.
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, `tiledoc detect - Report the format of Tiled assets

Usage:
  tiledoc detect [options] <path>...

Options:
  -archive string   Read paths from this zip archive
  -root string      Base directory for relative paths

Prints one line per path: the path, the format (xml, json or unknown)
and how it was chosen (extension, sniff or none).

Examples:
  tiledoc detect maps/level1.tmx
  tiledoc detect -archive assets.zip maps/level1.dat`)
}
