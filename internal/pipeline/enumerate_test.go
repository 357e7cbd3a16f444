package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func collectTasks(t *testing.T, e *Enumerator) []string {
	t.Helper()
	var paths []string
	for task := range e.Tasks(context.Background()) {
		paths = append(paths, task.Path)
	}
	sort.Strings(paths)
	return paths
}

func TestEnumeratorWalksRecursively(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested", "deeper")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, dir, "a.txt", "a", time.Time{})
	writeFile(t, filepath.Join(dir, "nested"), "b.txt", "b", time.Time{})
	writeFile(t, sub, "c.txt", "c", time.Time{})

	paths := collectTasks(t, NewEnumerator(dir, NewCancelToken(), nil, nil))
	if len(paths) != 3 {
		t.Fatalf("discovered %d files, want 3: %v", len(paths), paths)
	}
}

func TestEnumeratorSkipsHiddenAndLockFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "visible.txt", "x", time.Time{})
	writeFile(t, dir, ".hidden", "x", time.Time{})
	writeFile(t, dir, "~$report.docx", "x", time.Time{})

	paths := collectTasks(t, NewEnumerator(dir, NewCancelToken(), nil, nil))
	if len(paths) != 1 || filepath.Base(paths[0]) != "visible.txt" {
		t.Fatalf("unexpected discovery set: %v", paths)
	}
}

func TestEnumeratorTerminatesCleanlyOnCancel(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, dir, filepath.Base(manyPaths(20)[i]), "x", time.Time{})
	}

	token := NewCancelToken()
	token.Cancel()
	paths := collectTasks(t, NewEnumerator(dir, token, nil, nil))
	if len(paths) != 0 {
		t.Fatalf("cancelled walk yielded %d tasks, want 0", len(paths))
	}
}

func TestEnumeratorReportsUnreadableEntriesOnSideChannel(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "ok.txt", "x", time.Time{})
	locked := filepath.Join(dir, "locked")
	if err := os.MkdirAll(locked, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, locked, "secret.txt", "x", time.Time{})
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var skipped []SkippedEntry
	enumerator := NewEnumerator(dir, NewCancelToken(), nil, func(entry SkippedEntry) {
		skipped = append(skipped, entry)
	})
	paths := collectTasks(t, enumerator)

	if len(paths) != 1 {
		t.Fatalf("walk should continue past unreadable dirs, got %v", paths)
	}
	if len(skipped) == 0 {
		t.Fatal("expected unreadable directory on the side channel")
	}
}
