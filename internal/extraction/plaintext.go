package extraction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TextExtensions are the extensions the plaintext adapter can read directly.
// Binary office formats and PDFs need format parsers and stay unsupported.
func TextExtensions() []string {
	return []string{
		".txt", ".csv", ".md", ".html", ".htm", ".xml", ".json",
		".yaml", ".yml", ".log", ".tsv", ".rtf",
	}
}

// Plaintext reads text files directly, bounded by line and byte limits so a
// multi-gigabyte log cannot stall a chunk. Content that is not valid UTF-8 is
// retried as Latin-1 before being declared unreadable.
type Plaintext struct {
	MaxLines int
	MaxBytes int
}

// NewPlaintext constructs the adapter with the given read bounds.
func NewPlaintext(maxLines, maxBytes int) *Plaintext {
	return &Plaintext{MaxLines: maxLines, MaxBytes: maxBytes}
}

// Extract reads up to MaxLines lines or MaxBytes bytes, whichever comes
// first, and returns cleaned text. Mostly non-printable content yields an
// empty string so the pipeline records the file as skipped.
func (p *Plaintext) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var b strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		if p.MaxLines > 0 && lines >= p.MaxLines {
			break
		}
		if p.MaxBytes > 0 && b.Len() >= p.MaxBytes {
			break
		}
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
		lines++
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := b.String()
	if p.MaxBytes > 0 && len(text) > p.MaxBytes {
		text = text[:p.MaxBytes]
	}
	if !utf8.ValidString(text) {
		decoded, err := charmap.ISO8859_1.NewDecoder().String(text)
		if err != nil {
			return "", nil
		}
		text = decoded
	}
	text = CleanText(text)
	if !mostlyPrintable(text) {
		return "", nil
	}
	return text, nil
}

var (
	newlineRuns = regexp.MustCompile(`[\r\n]+`)
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
)

// CleanText collapses whitespace runs and trims the result.
func CleanText(text string) string {
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// mostlyPrintable reports whether at least 85% of the runes are printable,
// the threshold below which content is treated as binary.
func mostlyPrintable(text string) bool {
	if text == "" {
		return true
	}
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || r == '\n' {
			printable++
		}
	}
	return float64(printable)/float64(total) >= 0.85
}
