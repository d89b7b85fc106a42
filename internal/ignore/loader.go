package ignore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/Paintersrp/zrt/internal/constants"
)

// Load reads the nearest .zrtignore, looking in dir first and then in each
// parent directory. The first regular file found wins. A missing file yields
// empty patterns.
func Load(dir string) (*Patterns, error) {
	patterns := &Patterns{}

	current, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for {
		ignoreFile := filepath.Join(current, constants.IgnoreFile)
		found, err := isIgnoreFile(ignoreFile)
		if err != nil {
			return nil, err
		}
		if found {
			data, err := os.ReadFile(ignoreFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", ignoreFile, err)
			}
			if err := patterns.AddAll(data); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", ignoreFile, err)
			}
			return patterns, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return patterns, nil
		}
		current = parent
	}
}

// isIgnoreFile reports whether path is a regular file. Missing files and
// paths below a non-directory count as absent.
func isIgnoreFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// AddAll compiles every line of an ignore file.
func (p *Patterns) AddAll(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if err := p.Add(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
