package format_test

import (
	"errors"
	"testing"

	"github.com/tmxkit/tiledoc/document"
	"github.com/tmxkit/tiledoc/format"
	"github.com/tmxkit/tiledoc/value"
)

func TestNewParser(t *testing.T) {
	want := document.New(document.FormatJSON, value.Map(nil))
	var got []byte
	p := format.NewParser(document.FormatJSON, func(data []byte) (*document.Document, error) {
		got = data
		return want, nil
	})

	if p.Format() != document.FormatJSON {
		t.Errorf("Format() = %v, want json", p.Format())
	}
	doc, err := p.Parse([]byte("{}"))
	if err != nil || doc != want {
		t.Errorf("Parse() = %p, %v; want %p", doc, err, want)
	}
	if string(got) != "{}" {
		t.Errorf("parse func received %q", got)
	}

	parseErr := errors.New("boom")
	p = format.NewParser(document.FormatXML, func([]byte) (*document.Document, error) { return nil, parseErr })
	if _, err := p.Parse(nil); !errors.Is(err, parseErr) {
		t.Errorf("Parse() error = %v, want %v", err, parseErr)
	}
}
