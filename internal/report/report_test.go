package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Paintersrp/zrt/internal/note"
	"github.com/Paintersrp/zrt/internal/stats"
)

func sample() []note.Record {
	return []note.Record{
		{Path: "vault/big.md", Tags: note.NewTagSet("refactored", "draft"), Words: 1200},
		{Path: "vault/small.md", Tags: note.NewTagSet(), Words: 7},
	}
}

func TestPlainRecordsWithWords(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, Plain, false).Records(sample(), true); err != nil {
		t.Fatalf("Records returned error: %v", err)
	}

	want := "    1200 words  vault/big.md\n       7 words  vault/small.md\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPlainRecordsPathsOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, "", false).Records(sample(), false); err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if buf.String() != "vault/big.md\nvault/small.md\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSONRecords(t *testing.T) {
	records := sample()
	records[0].ModifiedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := New(&buf, JSON, false).Records(records, false); err != nil {
		t.Fatalf("Records returned error: %v", err)
	}

	var got []recordJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Words != 1200 || strings.Join(got[0].Tags, ",") != "draft,refactored" {
		t.Fatalf("unexpected first record %+v", got[0])
	}
	if got[0].Modified != "2024-03-01T12:00:00Z" || got[1].Modified != "" {
		t.Fatalf("unexpected modification times %+v", got)
	}
	if got[1].Tags == nil {
		t.Fatalf("expected an empty tag array, not null")
	}
}

func TestJSONEmptyListing(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, JSON, false).Records(nil, true); err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected an empty array, got %q", buf.String())
	}
}

func TestTableRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, Table, false).Records(sample(), true); err != nil {
		t.Fatalf("Records returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"WORDS", "TAGS", "PATH", "1200", "draft, refactored", "vault/small.md"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPatternWording(t *testing.T) {
	var buf bytes.Buffer
	s := stats.PatternStats{Tag: "to_refactor", Total: 8, Matching: 3}
	if err := New(&buf, Plain, false).Pattern(s); err != nil {
		t.Fatalf("Pattern returned error: %v", err)
	}

	want := "Total files: 8\nFiles with pattern 'to_refactor': 3\nPercentage: 37.50%\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestComparisonWording(t *testing.T) {
	var buf bytes.Buffer
	c := stats.ComparisonStats{DoneTag: "refactored", TodoTag: "to_refactor", Total: 10, Done: 2, Todo: 1}
	if err := New(&buf, Plain, false).Comparison(c); err != nil {
		t.Fatalf("Comparison returned error: %v", err)
	}

	want := "refactored files: 2\nto_refactor files: 1\nDone percentage: 66.67%\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWordsWording(t *testing.T) {
	var buf bytes.Buffer
	w := stats.WordStats{Tag: "draft", TaggedFiles: 1, TaggedWords: 25, TotalFiles: 4, TotalWords: 100}
	if err := New(&buf, Plain, false).Words(w); err != nil {
		t.Fatalf("Words returned error: %v", err)
	}

	want := strings.Join([]string{
		"Files with tag 'draft': 1",
		"Words in tagged files: 25",
		"Total files: 4",
		"Total words in all files: 100",
		"Percentage of words tagged: 25.00%",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestCountAndJSONStats(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, Plain, false).Count(42); err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if buf.String() != "42\n" {
		t.Fatalf("unexpected count output %q", buf.String())
	}

	buf.Reset()
	if err := New(&buf, JSON, false).Pattern(stats.PatternStats{Tag: "x", Total: 3, Matching: 1}); err != nil {
		t.Fatalf("Pattern returned error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if got["percentage"] != 33.33 || got["tag"] != "x" {
		t.Fatalf("unexpected json stats %v", got)
	}
}

func TestTags(t *testing.T) {
	counts := []stats.TagCount{{Tag: "refactored", Count: 12}, {Tag: "draft", Count: 3}}

	var buf bytes.Buffer
	if err := New(&buf, Plain, false).Tags(counts); err != nil {
		t.Fatalf("Tags returned error: %v", err)
	}
	if buf.String() != "    12  refactored\n     3  draft\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if err := New(&buf, Table, false).Tags(counts); err != nil {
		t.Fatalf("Tags returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "COUNT") || !strings.Contains(buf.String(), "refactored") {
		t.Fatalf("unexpected table output:\n%s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
	}{
		{"", Plain},
		{"plain", Plain},
		{"TABLE", Table},
		{"json", JSON},
	} {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("csv"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
