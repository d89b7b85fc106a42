package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// fakeS3 serves a fixed bucket, two keys per listing page.
type fakeS3 struct {
	bucket  string
	objects map[string]string
	listErr error
	getErr  error
}

func (f *fakeS3) keys(prefix string) []string {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if aws.ToString(in.Bucket) != f.bucket {
		return nil, &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "missing"}
	}

	keys := f.keys(aws.ToString(in.Prefix))
	start := 0
	if token := aws.ToString(in.ContinuationToken); token != "" {
		fmt.Sscanf(token, "%d", &start)
	}
	end := start + 2
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3.ListObjectsV2Output{}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			LastModified: aws.Time(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
		})
	}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(fmt.Sprintf("%d", end))
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	}
	size := int64(len(body))
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader([]byte(body))),
		ContentLength: aws.Int64(size),
		ContentRange:  aws.String(fmt.Sprintf("bytes 0-%d/%d", size-1, size)),
	}, nil
}

func newFakeScanner(t *testing.T, root string, client *fakeS3, opts Options) *Scanner {
	t.Helper()
	opts.S3Client = client
	s, err := New(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		root   string
		bucket string
		prefix string
		ok     bool
	}{
		{root: "s3://notes", bucket: "notes", prefix: "", ok: true},
		{root: "s3://notes/", bucket: "notes", prefix: "", ok: true},
		{root: "s3://notes/vault", bucket: "notes", prefix: "vault/", ok: true},
		{root: "s3://notes/vault/sub/", bucket: "notes", prefix: "vault/sub/", ok: true},
		{root: "s3://", ok: false},
		{root: "/home/me/notes", ok: false},
	}

	for _, tt := range tests {
		bucket, prefix, ok := ParseS3URI(tt.root)
		if bucket != tt.bucket || prefix != tt.prefix || ok != tt.ok {
			t.Fatalf("ParseS3URI(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.root, bucket, prefix, ok, tt.bucket, tt.prefix, tt.ok)
		}
	}
}

func TestS3WalkFiltersKeysAcrossPages(t *testing.T) {
	client := &fakeS3{
		bucket: "notes",
		objects: map[string]string{
			"vault/a.md":             "a",
			"vault/b.txt":            "b",
			"vault/.obsidian/x.md":   "x",
			"vault/archive/old.md":   "old",
			"vault/sub/":             "",
			"vault/sub/c.md":         "c",
			"vault/sub/d.md":         "d",
			"other/outside.md":       "o",
			"vault/templates/day.md": "t",
		},
	}

	patterns := mustPatterns(t, "templates/")
	s := newFakeScanner(t, "s3://notes/vault", client, Options{
		Exclude: []string{"archive"},
		Ignore:  patterns,
	})

	var rels, paths []string
	err := s.Walk(context.Background(), func(e Entry) error {
		rels = append(rels, e.Rel)
		paths = append(paths, e.Path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	wantRels := []string{"a.md", "sub/c.md", "sub/d.md"}
	if !reflect.DeepEqual(rels, wantRels) {
		t.Fatalf("unexpected entries: got %v, want %v", rels, wantRels)
	}
	if paths[0] != "s3://notes/vault/a.md" {
		t.Fatalf("unexpected display path %q", paths[0])
	}
}

func TestS3EntryReadDownloadsObject(t *testing.T) {
	client := &fakeS3{
		bucket:  "notes",
		objects: map[string]string{"a.md": "---\ntags: [x]\n---\nhello there"},
	}

	s := newFakeScanner(t, "s3://notes", client, Options{})

	var got []byte
	err := s.Walk(context.Background(), func(e Entry) error {
		data, err := e.Read(context.Background())
		if err != nil {
			return err
		}
		got = data
		if !e.ModTime.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
			t.Fatalf("unexpected modification time %v", e.ModTime)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if string(got) != client.objects["a.md"] {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestS3EntryReadFailure(t *testing.T) {
	client := &fakeS3{
		bucket:  "notes",
		objects: map[string]string{"a.md": "x"},
		getErr:  errors.New("access denied"),
	}

	s := newFakeScanner(t, "s3://notes", client, Options{})

	err := s.Walk(context.Background(), func(e Entry) error {
		if _, err := e.Read(context.Background()); err == nil {
			t.Fatalf("expected read error for %s", e.Path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
}

func TestS3RootErrors(t *testing.T) {
	missing := newFakeScanner(t, "s3://absent/vault", &fakeS3{bucket: "notes"}, Options{})
	err := missing.Walk(context.Background(), func(Entry) error { return nil })
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}

	denied := newFakeScanner(t, "s3://notes", &fakeS3{
		bucket:  "notes",
		listErr: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"},
	}, Options{})
	err = denied.Walk(context.Background(), func(Entry) error { return nil })
	if !errors.Is(err, ErrRootUnreadable) {
		t.Fatalf("expected ErrRootUnreadable, got %v", err)
	}
}
