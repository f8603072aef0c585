package cli

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tmxkit/tiledoc"
	"github.com/tmxkit/tiledoc/source"
)

func TestNewReporter(t *testing.T) {
	d := tiledoc.Diagnostic{Kind: tiledoc.KindNotFound, Path: "a.tmx", Message: `file "a.tmx" not found`}

	var plain bytes.Buffer
	NewReporter(&plain, false).Report(d)
	if got, want := plain.String(), "error: file \"a.tmx\" not found [not-found]\n"; got != want {
		t.Errorf("plain output = %q, want %q", got, want)
	}

	var colored bytes.Buffer
	NewReporter(&colored, true).Report(d)
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output %q has no escape sequences", colored.String())
	}
	if !strings.Contains(colored.String(), `file "a.tmx" not found`) {
		t.Errorf("colored output %q lost the message", colored.String())
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("IsTerminal(regular file) = true")
	}
}

func TestAccessorOptions(t *testing.T) {
	fset := flag.NewFlagSet("test", flag.ContinueOnError)
	var opts AccessorOptions
	opts.Register(fset)
	if err := fset.Parse([]string{"-root", "assets"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	acc, release, err := opts.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer release()
	if acc.Type() != source.TypeFS {
		t.Errorf("Type() = %v, want fs", acc.Type())
	}

	opts = AccessorOptions{Archive: filepath.Join(t.TempDir(), "missing.zip")}
	if _, _, err := opts.Open(); err == nil {
		t.Error("Open() with missing archive expected error")
	}
}
