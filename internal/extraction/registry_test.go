package extraction

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"retain/internal/services"
)

func newTestRegistry() *Registry {
	registry := NewRegistry([]string{".zip", ".exe"})
	registry.Register(NewPlaintext(100, 4000), TextExtensions()...)
	return registry
}

func TestRegistryExtractsTextFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("meeting   notes\n\n\nfollow  up"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, unsupported, err := newTestRegistry().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if unsupported {
		t.Fatal(".txt must be supported")
	}
	if text != "meeting notes\nfollow up" {
		t.Fatalf("cleaned text = %q", text)
	}
}

func TestRegistryReportsExcludedAndUnknownAsUnsupported(t *testing.T) {
	registry := newTestRegistry()
	for _, name := range []string{"archive.zip", "report.docx", "noext"} {
		_, unsupported, err := registry.Extract(context.Background(), filepath.Join(t.TempDir(), name))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if !unsupported {
			t.Fatalf("%s should be unsupported", name)
		}
	}
}

func TestRegistryTagsIOFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, unsupported, err := newTestRegistry().Extract(context.Background(), path)
	if unsupported {
		t.Fatal("missing file is an error, not unsupported")
	}
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction marker, got %v", err)
	}
}

func TestPlaintextBoundsLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.log")
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("line\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, err := NewPlaintext(10, 0).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := strings.Count(text, "\n"); got > 10 {
		t.Fatalf("read %d lines, want at most 10", got)
	}
}

func TestPlaintextDecodesLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.txt")
	// "résumé" in Latin-1; 0xE9 is invalid UTF-8 on its own.
	if err := os.WriteFile(path, []byte{'r', 0xE9, 's', 'u', 'm', 0xE9}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, err := NewPlaintext(10, 100).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "résumé" {
		t.Fatalf("decoded text = %q", text)
	}
}

func TestPlaintextBinaryContentYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.txt")
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i % 7)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, err := NewPlaintext(100, 4000).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "" {
		t.Fatalf("binary content should yield empty text, got %q", text)
	}
}
