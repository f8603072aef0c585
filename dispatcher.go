package tiledoc

import (
	"context"
	"errors"

	"github.com/tmxkit/tiledoc/detect"
	"github.com/tmxkit/tiledoc/document"
	"github.com/tmxkit/tiledoc/format/json"
	"github.com/tmxkit/tiledoc/format/xml"
	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/types"
)

// Dispatcher resolves asset paths through one accessor and parses them.
// It keeps no state between calls; it is safe for concurrent use when its
// accessor, parsers and reporter are.
type Dispatcher struct {
	acc      source.Accessor
	reporter Reporter
	xml      document.TreeBuilder
	json     document.Parser
	watchCfg WatchConfig
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithReporter sets where diagnostics go. A nil reporter discards them.
// The default logs through the standard log package.
func WithReporter(r Reporter) Option {
	return func(d *Dispatcher) {
		if r == nil {
			r = NopReporter
		}
		d.reporter = r
	}
}

// WithXMLBuilder replaces the tree builder used for XML files.
func WithXMLBuilder(b document.TreeBuilder) Option {
	return func(d *Dispatcher) {
		d.xml = b
	}
}

// WithJSONParser replaces the parser used for JSON files.
func WithJSONParser(p document.Parser) Option {
	return func(d *Dispatcher) {
		d.json = p
	}
}

// WithWatchConfig sets how Watch debounces and configures watchers.
func WithWatchConfig(cfg WatchConfig) Option {
	return func(d *Dispatcher) {
		d.watchCfg = cfg
	}
}

// New creates a Dispatcher reading through acc.
//
// Example:
//
//	d := tiledoc.New(fs.New(fs.WithRoot("assets")))
//	doc := d.Build(ctx, "maps/level1.tmj")
//	if doc == nil {
//	  // already reported; skip the asset
//	}
func New(acc source.Accessor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		acc:      acc,
		reporter: defaultReporter,
		xml:      xml.NewBuilder(),
		json:     json.NewParser(),
		watchCfg: DefaultWatchConfig(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Accessor returns the accessor the Dispatcher reads through.
func (d *Dispatcher) Accessor() source.Accessor {
	return d.acc
}

// Build resolves path and returns its document, or nil on failure.
// Every failure has been reported by the time Build returns.
//
// An XML file yields whatever the tree builder returned, unchanged: the
// dispatcher fills Details only on documents it parsed itself.
func (d *Dispatcher) Build(ctx context.Context, path string) *document.Document {
	doc, _ := d.Load(ctx, path)
	return doc
}

// Load is Build with the failure returned as well. Errors are a
// *document.NotFoundError, *document.UnknownFormatError, *document.ParseError
// or the context's error. Failures other than cancellation are also reported.
//
// A nil document with a nil error means the XML builder returned nothing.
func (d *Dispatcher) Load(ctx context.Context, path string) (*document.Document, error) {
	resolved, err := d.resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	f, method, err := d.classify(ctx, path, resolved)
	if err != nil {
		return nil, err
	}

	var doc *document.Document
	switch f {
	case document.FormatXML:
		doc, err = d.xml.Create(ctx, resolved, d.acc)
		if err != nil {
			return nil, d.fail(ctx, KindParseFailure, path, &document.ParseError{Path: path, Format: f, Err: err})
		}
		return doc, nil
	case document.FormatJSON:
		data, err := source.ReadAll(ctx, d.acc, resolved)
		if err != nil {
			return nil, d.fail(ctx, KindParseFailure, path, &document.ParseError{Path: path, Format: f, Err: err})
		}
		doc, err = d.json.Parse(data)
		if err != nil {
			return nil, d.fail(ctx, KindParseFailure, path, &document.ParseError{Path: path, Format: f, Err: err})
		}
	default:
		return nil, d.fail(ctx, KindUnknownFormat, path, &document.UnknownFormatError{Path: path})
	}

	d.fillDetails(&doc.Details, path, resolved, f, method)
	return doc, nil
}

// Classify resolves path and reports its format and how it was chosen,
// without parsing. An unknown format is not an error here.
func (d *Dispatcher) Classify(ctx context.Context, path string) (document.DocumentFormat, detect.Method, error) {
	resolved, err := d.resolve(ctx, path)
	if err != nil {
		return document.FormatUnknown, detect.MethodNone, err
	}
	return d.classify(ctx, path, resolved)
}

func (d *Dispatcher) resolve(ctx context.Context, path string) (string, error) {
	resolved, err := d.acc.Resolve(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", d.fail(ctx, KindNotFound, path, &document.NotFoundError{Path: path})
	}
	return resolved, nil
}

// classify checks the extension of the requested path, then sniffs the
// resolved file.
func (d *Dispatcher) classify(ctx context.Context, path, resolved string) (document.DocumentFormat, detect.Method, error) {
	f, method, err := detect.Classify(path, func() ([]byte, error) {
		return source.ReadHead(ctx, d.acc, resolved, detect.SniffLen)
	})
	if err != nil {
		return document.FormatUnknown, detect.MethodNone,
			d.fail(ctx, KindParseFailure, path, &document.ParseError{Path: path, Format: document.FormatUnknown, Err: err})
	}
	return f, method, nil
}

// fail reports err unless ctx was canceled, and returns the error the
// caller should see.
func (d *Dispatcher) fail(ctx context.Context, kind DiagnosticKind, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	d.reporter.Report(Diagnostic{
		Kind:    kind,
		Path:    path,
		Message: err.Error(),
		Err:     err,
	})
	return err
}

func (d *Dispatcher) fillDetails(det *types.Details, path, resolved string, f document.DocumentFormat, method detect.Method) {
	if filler, ok := d.acc.(types.DetailsFiller); ok {
		filler.FillDetails(det)
	} else {
		det.Source = d.acc.Type()
	}
	det.Path = path
	det.ResolvedPath = resolved
	det.Format = f
	det.Detection = string(method)
}
