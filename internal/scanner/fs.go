package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

type fsSource struct {
	root string
	opts Options
}

func newFSSource(root string, opts Options) *fsSource {
	return &fsSource{root: root, opts: opts}
}

func (s *fsSource) Walk(ctx context.Context, visit func(Entry) error) error {
	base, err := s.checkRoot()
	if err != nil {
		return err
	}

	visited := map[string]struct{}{base: {}}
	return s.walkTree(ctx, base, s.root, "", visited, visit)
}

func (s *fsSource) checkRoot() (string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrRootNotFound, s.root)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrRootUnreadable, s.root, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrRootUnreadable, s.root)
	}

	if _, err := os.ReadDir(s.root); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRootUnreadable, s.root, err)
	}

	base, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRootUnreadable, s.root, err)
	}
	return base, nil
}

// walkTree walks the directory at base, reporting paths under display and
// relative paths under relPrefix. Symlinked directories are followed once;
// visited holds the resolved paths already walked.
func (s *fsSource) walkTree(
	ctx context.Context,
	base, display, relPrefix string,
	visited map[string]struct{},
	visit func(Entry) error,
) error {
	return filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		sub, relErr := filepath.Rel(base, p)
		if relErr != nil {
			return relErr
		}
		displayPath := filepath.Join(display, sub)
		rel := joinRel(relPrefix, filepath.ToSlash(sub))

		if err != nil {
			s.opts.skip(displayPath, err)
			if d != nil && d.IsDir() && p != base {
				return filepath.SkipDir
			}
			return nil
		}

		if p == base {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if s.opts.skipDir(rel, name) {
				return filepath.SkipDir
			}
			if resolved, err := filepath.EvalSymlinks(p); err == nil {
				visited[resolved] = struct{}{}
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return s.followLink(ctx, p, displayPath, rel, name, visited, visit)
		}

		if !d.Type().IsRegular() || !s.opts.keepFile(rel, name) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.opts.skip(displayPath, err)
			return nil
		}

		return visit(fileEntry(p, displayPath, rel, info))
	})
}

func (s *fsSource) followLink(
	ctx context.Context,
	p, displayPath, rel, name string,
	visited map[string]struct{},
	visit func(Entry) error,
) error {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		s.opts.skip(displayPath, err)
		return nil
	}

	info, err := os.Stat(target)
	if err != nil {
		s.opts.skip(displayPath, err)
		return nil
	}

	if info.IsDir() {
		if s.opts.skipDir(rel, name) {
			return nil
		}
		if _, seen := visited[target]; seen {
			return nil
		}
		visited[target] = struct{}{}
		return s.walkTree(ctx, target, displayPath, rel, visited, visit)
	}

	if !info.Mode().IsRegular() || !s.opts.keepFile(rel, name) {
		return nil
	}
	return visit(fileEntry(target, displayPath, rel, info))
}

func fileEntry(source, displayPath, rel string, info fs.FileInfo) Entry {
	return NewEntry(displayPath, rel, info.ModTime(), func(context.Context) ([]byte, error) {
		return os.ReadFile(source)
	})
}

func joinRel(prefix, sub string) string {
	if sub == "." {
		sub = ""
	}
	if prefix == "" {
		return sub
	}
	return path.Join(prefix, sub)
}
