// Package cli holds what the tiledoc subcommands share: accessor flags and
// terminal-aware diagnostics.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tmxkit/tiledoc"
	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/source/fs"
	"github.com/tmxkit/tiledoc/source/zip"
)

// AccessorOptions selects where asset paths are read from.
type AccessorOptions struct {
	Archive string
	Root    string
}

// Register adds the accessor flags to fs.
func (o *AccessorOptions) Register(fs *flag.FlagSet) {
	fs.StringVar(&o.Archive, "archive", "", "read paths from this zip archive")
	fs.StringVar(&o.Root, "root", "", "base directory for relative paths")
}

// Open returns the accessor the options describe and a function that
// releases it.
func (o *AccessorOptions) Open() (source.Accessor, func() error, error) {
	if o.Archive != "" {
		acc, err := zip.Open(o.Archive)
		if err != nil {
			return nil, nil, err
		}
		return acc, acc.Close, nil
	}
	var opts []fs.Option
	if o.Root != "" {
		opts = append(opts, fs.WithRoot(o.Root))
	}
	return fs.New(opts...), func() error { return nil }, nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewReporter returns a Reporter printing one line per diagnostic to w.
// Labels are colored when colored is true.
func NewReporter(w io.Writer, colored bool) tiledoc.Reporter {
	label := color.New(color.FgRed, color.Bold)
	kind := color.New(color.Faint)
	if colored {
		label.EnableColor()
		kind.EnableColor()
	} else {
		label.DisableColor()
		kind.DisableColor()
	}
	return tiledoc.ReporterFunc(func(d tiledoc.Diagnostic) {
		fmt.Fprintf(w, "%s %s %s\n", label.Sprint("error:"), d.Message, kind.Sprintf("[%s]", d.Kind))
	})
}
