// Package scanner walks a note root and yields the files that look like notes.
package scanner

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/Paintersrp/zrt/internal/constants"
	"github.com/Paintersrp/zrt/internal/ignore"
)

var (
	ErrRootNotFound   = errors.New("root not found")
	ErrRootUnreadable = errors.New("root unreadable")
)

// Entry is a single candidate note produced by a walk.
type Entry struct {
	// Path is the location shown to the user: the root joined with Rel for
	// local scans, an s3:// URI for bucket scans.
	Path string
	// Rel is the slash separated path relative to the root.
	Rel     string
	ModTime time.Time

	read func(ctx context.Context) ([]byte, error)
}

// Read loads the entry content.
func (e Entry) Read(ctx context.Context) ([]byte, error) {
	if e.read == nil {
		return nil, errors.New("entry has no reader")
	}
	return e.read(ctx)
}

// NewEntry builds an entry backed by the provided reader.
func NewEntry(path, rel string, modTime time.Time, read func(ctx context.Context) ([]byte, error)) Entry {
	return Entry{Path: path, Rel: rel, ModTime: modTime, read: read}
}

// Source enumerates entries from a backing store.
type Source interface {
	Walk(ctx context.Context, visit func(Entry) error) error
}

// Options controls which entries a scan keeps.
type Options struct {
	// Exclude lists directory names that are never descended into.
	Exclude []string
	// Extensions lists the file extensions kept, including the dot. An empty
	// list keeps ".md" files only and "*" keeps every file.
	Extensions []string
	// Ignore holds .zrtignore rules. When nil, local scans load the nearest
	// .zrtignore for the root.
	Ignore *ignore.Patterns
	// OnSkip is called for every entry that could not be inspected.
	OnSkip func(path string, err error)

	S3 S3Options
	// S3Client replaces the client built from S3 when set.
	S3Client S3API
}

func (o Options) skip(path string, err error) {
	if o.OnSkip != nil {
		o.OnSkip(path, err)
	}
}

func (o Options) skipDir(rel, name string) bool {
	if isHidden(name) {
		return true
	}
	for _, excluded := range o.Exclude {
		if excluded != "" && name == excluded {
			return true
		}
	}
	return o.Ignore.Match(rel)
}

func (o Options) keepFile(rel, name string) bool {
	if isHidden(name) || o.Ignore.Match(rel) {
		return false
	}
	return o.matchesExtension(name)
}

func (o Options) matchesExtension(name string) bool {
	extensions := o.Extensions
	if len(extensions) == 0 {
		extensions = []string{constants.DefaultExtension}
	}

	ext := path.Ext(name)
	for _, want := range extensions {
		if want == constants.AnyExtension {
			return true
		}
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == want {
			return true
		}
	}
	return false
}

// Keeps reports whether a slash separated path relative to the root would be
// kept by a walk.
func (o Options) Keeps(rel string) bool {
	return o.keepKey(rel)
}

// SkipsDir reports whether a walk would skip the directory at rel.
func (o Options) SkipsDir(rel string) bool {
	return o.skipDir(rel, path.Base(rel))
}

// keepKey applies the directory and file rules to every segment of a flat
// object key.
func (o Options) keepKey(rel string) bool {
	segments := strings.Split(rel, "/")
	for i := 0; i < len(segments)-1; i++ {
		if o.skipDir(strings.Join(segments[:i+1], "/"), segments[i]) {
			return false
		}
	}
	return o.keepFile(rel, segments[len(segments)-1])
}

// isHidden reports dot entries, except the .tmp* directories some editors
// use for scratch vaults.
func isHidden(name string) bool {
	if strings.HasPrefix(name, ".tmp") {
		return false
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Scanner walks a root through its Source.
type Scanner struct {
	root   string
	source Source
}

// New selects the source for root: s3://bucket/prefix roots are read from S3,
// everything else from the local filesystem. Local roots are checked here and
// again on every walk.
func New(ctx context.Context, root string, opts Options) (*Scanner, error) {
	if bucket, prefix, ok := ParseS3URI(root); ok {
		src, err := newS3Source(ctx, bucket, prefix, opts)
		if err != nil {
			return nil, err
		}
		return &Scanner{root: root, source: src}, nil
	}

	src := newFSSource(root, opts)
	if _, err := src.checkRoot(); err != nil {
		return nil, err
	}

	if opts.Ignore == nil {
		patterns, err := ignore.Load(root)
		if err != nil {
			return nil, err
		}
		src.opts.Ignore = patterns
	}

	return &Scanner{root: root, source: src}, nil
}

// NewWithSource wraps an existing source.
func NewWithSource(root string, source Source) *Scanner {
	return &Scanner{root: root, source: source}
}

func (s *Scanner) Root() string {
	return s.root
}

// Walk calls visit for every kept entry in scan order. Each call re-reads
// the source.
func (s *Scanner) Walk(ctx context.Context, visit func(Entry) error) error {
	return s.source.Walk(ctx, visit)
}
