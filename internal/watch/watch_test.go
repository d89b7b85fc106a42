package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Paintersrp/zrt/internal/scanner"
)

func startWatcher(t *testing.T, root string, opts Options) <-chan []string {
	t.Helper()

	if opts.Debounce == 0 {
		opts.Debounce = 50 * time.Millisecond
	}
	w, err := New(root, opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(paths []string) error {
			batches <- paths
			return nil
		})
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return batches
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func nextBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case paths := <-batches:
		return paths
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a change batch")
		return nil
	}
}

func TestRunReportsNoteChanges(t *testing.T) {
	root := t.TempDir()
	batches := startWatcher(t, root, Options{})

	writeFile(t, filepath.Join(root, "image.png"), "binary")
	writeFile(t, filepath.Join(root, "a.md"), "hello")

	got := nextBatch(t, batches)
	if !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Fatalf("expected [a.md], got %v", got)
	}
}

func TestRunSkipsExcludedAndHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"archive", ".obsidian", "notes"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	batches := startWatcher(t, root, Options{Scan: scanner.Options{Exclude: []string{"archive"}}})

	writeFile(t, filepath.Join(root, "archive", "old.md"), "old")
	writeFile(t, filepath.Join(root, ".obsidian", "workspace.md"), "state")
	writeFile(t, filepath.Join(root, "notes", "b.md"), "fresh")

	got := nextBatch(t, batches)
	if !reflect.DeepEqual(got, []string{"notes/b.md"}) {
		t.Fatalf("expected [notes/b.md], got %v", got)
	}
}

func TestRunStopsWhenCallbackFails(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, Options{Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer w.Close()

	boom := errors.New("boom")
	result := make(chan error, 1)
	go func() {
		result <- w.Run(context.Background(), func([]string) error { return boom })
	}()

	writeFile(t, filepath.Join(root, "a.md"), "hello")

	select {
	case err := <-result:
		if !errors.Is(err, boom) {
			t.Fatalf("expected callback error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return")
	}
}

func TestRunReturnsOnClose(t *testing.T) {
	w, err := New(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result := make(chan error, 1)
	go func() {
		result <- w.Run(context.Background(), func([]string) error { return nil })
	}()

	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("expected nil after close, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return")
	}
}

func TestNewRootErrors(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), Options{}); !errors.Is(err, scanner.ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "note.md")
	writeFile(t, file, "x")
	if _, err := New(file, Options{}); !errors.Is(err, scanner.ErrRootUnreadable) {
		t.Fatalf("expected ErrRootUnreadable, got %v", err)
	}

	if _, err := New("s3://bucket/notes", Options{}); !errors.Is(err, ErrRemoteRoot) {
		t.Fatalf("expected ErrRemoteRoot, got %v", err)
	}
}
