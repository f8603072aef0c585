package tiledoc

import (
	"fmt"
	"log"
	"log/slog"
)

// DiagnosticKind classifies a reported failure.
type DiagnosticKind string

const (
	// KindNotFound is reported when a path does not resolve.
	KindNotFound DiagnosticKind = "not-found"

	// KindUnknownFormat is reported when a file is neither XML nor JSON.
	KindUnknownFormat DiagnosticKind = "unknown-format"

	// KindParseFailure is reported when a classified file cannot be read or decoded.
	KindParseFailure DiagnosticKind = "parse-failure"

	// KindWatchFailure is reported when a watcher delivers an error.
	KindWatchFailure DiagnosticKind = "watch-failure"
)

// Diagnostic describes a failure at the point it was detected.
type Diagnostic struct {
	Kind DiagnosticKind

	// Path is the path as requested by the caller.
	Path string

	// Message is a human-readable description. It always names the path.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("tiledoc: ERROR: %s", d.Message)
}

// Reporter receives diagnostics from a Dispatcher.
// Implementations must be safe for concurrent use when the Dispatcher is.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report implements Reporter.
func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

// defaultReporter logs diagnostics to stderr using the standard log package.
var defaultReporter Reporter = ReporterFunc(func(d Diagnostic) {
	log.Println(d.String())
})

// NopReporter discards every diagnostic.
var NopReporter Reporter = ReporterFunc(func(Diagnostic) {})

// SlogReporter returns a Reporter that logs diagnostics at error level.
//
// Example:
//
//	d := tiledoc.New(acc, tiledoc.WithReporter(tiledoc.SlogReporter(slog.Default())))
func SlogReporter(logger *slog.Logger) Reporter {
	return ReporterFunc(func(d Diagnostic) {
		attrs := []any{"kind", string(d.Kind), "path", d.Path}
		if d.Err != nil {
			attrs = append(attrs, "error", d.Err)
		}
		logger.Error(d.Message, attrs...)
	})
}
