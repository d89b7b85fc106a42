// Package watch reports changes to the notes under a local root.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/zrt/internal/ignore"
	"github.com/Paintersrp/zrt/internal/scanner"
)

const DefaultDebounce = 300 * time.Millisecond

var ErrRemoteRoot = errors.New("watch needs a local root")

type Options struct {
	// Scan decides which paths count as notes.
	Scan scanner.Options
	// Debounce is the quiet period that closes a batch of changes.
	Debounce time.Duration
	Logger   *log.Logger
}

// Watcher follows every kept directory below a root, including directories
// created after it starts.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	scan     scanner.Options
	debounce time.Duration
	logger   *log.Logger
	done     chan struct{}
	once     sync.Once
}

func New(root string, opts Options) (*Watcher, error) {
	if _, _, ok := scanner.ParseS3URI(root); ok {
		return nil, fmt.Errorf("%w: %s", ErrRemoteRoot, root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", scanner.ErrRootUnreadable, root, err)
	}
	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", scanner.ErrRootNotFound, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", scanner.ErrRootUnreadable, root, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", scanner.ErrRootUnreadable, root)
	}

	if opts.Scan.Ignore == nil {
		patterns, err := ignore.Load(abs)
		if err != nil {
			return nil, err
		}
		opts.Scan.Ignore = patterns
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		root:     abs,
		scan:     opts.Scan,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		done:     make(chan struct{}),
	}
	if err := w.addRecursive(abs); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Run calls onChange with the sorted relative paths of every batch of note
// changes. It returns when ctx is done, the watcher is closed or onChange
// fails.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string) error) error {
	pending := make(map[string]struct{})
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			rel, keep := w.handle(event)
			if !keep {
				continue
			}
			pending[rel] = struct{}{}
			fire = time.After(w.debounce)
		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for rel := range pending {
				paths = append(paths, rel)
			}
			sort.Strings(paths)
			clear(pending)

			w.logger.Debug("notes changed", "paths", paths)
			if err := onChange(paths); err != nil {
				return err
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event) (string, bool) {
	rel, ok := w.relative(event.Name)
	if !ok {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.scan.SkipsDir(rel) {
				if err := w.addRecursive(event.Name); err != nil {
					w.logger.Warn("failed to watch directory", "path", event.Name, "err", err)
				}
			}
			return "", false
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	return rel, w.scan.Keeps(rel)
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				w.logger.Warn("skipping unreadable directory", "path", path)
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, ok := w.relative(path); ok && w.scan.SkipsDir(rel) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// relative returns the slash separated path below the root, or false for the
// root itself and anything outside it.
func (w *Watcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
