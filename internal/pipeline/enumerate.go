package pipeline

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"retain/internal/logging"
)

// SkippedEntry reports a directory entry the walk could not process
// (permission denied, broken symlink). The walk continues past these.
type SkippedEntry struct {
	Path   string
	Reason string
}

// Enumerator produces a lazy, finite stream of file tasks via a recursive
// walk of root. It is single use; a new enumerator starts a fresh walk.
type Enumerator struct {
	root   string
	token  *CancelToken
	logger *slog.Logger
	onSkip func(SkippedEntry)
	now    func() time.Time
}

// NewEnumerator constructs an enumerator for root. onSkip receives per-entry
// walk failures on a side channel; it may be nil.
func NewEnumerator(root string, token *CancelToken, logger *slog.Logger, onSkip func(SkippedEntry)) *Enumerator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Enumerator{
		root:   root,
		token:  token,
		logger: logging.WithComponent(logger, "enumerator"),
		onSkip: onSkip,
		now:    time.Now,
	}
}

// Tasks starts the walk and returns the task stream. The channel is closed
// when the walk finishes, is cancelled, or fails. The tree is never
// materialized up front; each task is sent as soon as it is discovered.
// Cancellation terminates the stream cleanly between yields.
func (e *Enumerator) Tasks(ctx context.Context) <-chan FileTask {
	out := make(chan FileTask)
	go func() {
		defer close(out)
		err := filepath.WalkDir(e.root, func(path string, entry fs.DirEntry, walkErr error) error {
			if e.token.Cancelled() || ctx.Err() != nil {
				return fs.SkipAll
			}
			if walkErr != nil {
				e.skip(path, walkErr.Error())
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if entry.IsDir() {
				return nil
			}
			if hiddenEntry(entry.Name()) {
				return nil
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			select {
			case out <- FileTask{Path: path, DiscoveredAt: e.now()}:
			case <-ctx.Done():
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			// WalkDir only returns errors we did not absorb above; report the
			// root itself as skipped so the run can still complete.
			e.skip(e.root, err.Error())
		}
	}()
	return out
}

func (e *Enumerator) skip(path, reason string) {
	e.logger.Warn("walk entry skipped",
		logging.String(logging.FieldFile, path),
		logging.String("reason", reason),
	)
	if e.onSkip != nil {
		e.onSkip(SkippedEntry{Path: path, Reason: reason})
	}
}

// hiddenEntry filters dotfiles and office lock files (~$ prefixed).
func hiddenEntry(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$")
}
