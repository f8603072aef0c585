package detect

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"level.tmx": "<map/>",
		"level.dat": `{ "type": "map" }`,
		"notes.txt": "hello",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-root", root, "level.tmx", "level.dat", "notes.txt"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v, stderr %q", err, stderr.String())
	}

	want := "level.tmx\txml\textension\n" +
		"level.dat\tjson\tsniff\n" +
		"notes.txt\tunknown\tnone\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRun_Missing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-root", t.TempDir(), "missing.tmx"}, &stdout, &stderr)
	if err == nil {
		t.Fatal("run() expected error")
	}
	if !strings.Contains(stderr.String(), `file "missing.tmx" not found`) {
		t.Errorf("stderr = %q, want not found diagnostic", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), nil, &stdout, &stderr); err == nil {
		t.Error("run() without paths expected error")
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr = %q, want help", stderr.String())
	}
}
