package extraction

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"retain/internal/services"
)

// Adapter extracts plain text from one family of document formats.
type Adapter interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Registry maps file extensions to extraction adapters. Formats listed in the
// exclude set, or with no registered adapter, are reported as unsupported so
// the pipeline can skip them without error.
type Registry struct {
	adapters map[string]Adapter
	exclude  map[string]struct{}
}

// NewRegistry builds an empty registry with the given excluded extensions.
func NewRegistry(excludeExt []string) *Registry {
	exclude := make(map[string]struct{}, len(excludeExt))
	for _, ext := range excludeExt {
		exclude[normalizeExt(ext)] = struct{}{}
	}
	return &Registry{
		adapters: map[string]Adapter{},
		exclude:  exclude,
	}
}

// Register binds an adapter to the given extensions. Later registrations for
// the same extension win.
func (r *Registry) Register(adapter Adapter, exts ...string) {
	for _, ext := range exts {
		r.adapters[normalizeExt(ext)] = adapter
	}
}

// Supported returns the sorted extensions with a registered adapter.
func (r *Registry) Supported() []string {
	exts := make([]string, 0, len(r.adapters))
	for ext := range r.adapters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract resolves the file's adapter by extension and runs it. The
// unsupported flag is set for excluded or unregistered extensions; errors are
// tagged with the extraction marker.
func (r *Registry) Extract(ctx context.Context, path string) (string, bool, error) {
	ext := normalizeExt(filepath.Ext(path))
	if _, excluded := r.exclude[ext]; excluded {
		return "", true, nil
	}
	adapter, ok := r.adapters[ext]
	if !ok {
		return "", true, nil
	}
	text, err := adapter.Extract(ctx, path)
	if err != nil {
		return "", false, services.Wrap(services.ErrExtraction, "extraction", "extract", path, err)
	}
	return text, false, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
