// Package parser extracts front matter tags and word counts from note content.
package parser

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/zrt/internal/note"
)

const delimiter = "---"

// ErrMalformedFrontMatter reports front matter that is not a YAML mapping with
// a usable tags value.
var ErrMalformedFrontMatter = errors.New("malformed front matter")

// Metadata is the result of extracting a single note.
type Metadata struct {
	Tags           note.TagSet
	Words          int
	HasFrontMatter bool
	// Malformed is set when a front matter block was found but could not be
	// parsed. Tags is empty and Words covers the whole content in that case.
	Malformed bool
}

// Extract parses the optional front matter block of content and counts the
// words of the remaining body with counter. It never fails: malformed front
// matter degrades to an empty tag set.
func Extract(content []byte, counter Counter) Metadata {
	if counter == nil {
		counter = Whitespace
	}

	meta := Metadata{Tags: note.NewTagSet()}
	body := content

	if fm, rest, ok := SplitFrontMatter(content); ok {
		meta.HasFrontMatter = true
		tags, err := ParseTags(fm)
		if err != nil {
			meta.Malformed = true
		} else {
			meta.Tags = tags
			body = rest
		}
	}

	meta.Words = counter.Count(body)
	return meta
}

// SplitFrontMatter separates a leading front matter block from the body.
// The first line must be exactly "---" and a later line must close the block
// with "---". Without a closing delimiter the whole content is body.
func SplitFrontMatter(content []byte) (fm []byte, body []byte, ok bool) {
	end := bytes.IndexByte(content, '\n')
	if end < 0 || !isDelimiter(content[:end]) {
		return nil, content, false
	}

	start := end + 1
	for pos := start; pos < len(content); {
		next := bytes.IndexByte(content[pos:], '\n')
		lineEnd := len(content)
		if next >= 0 {
			lineEnd = pos + next
		}

		if isDelimiter(content[pos:lineEnd]) {
			bodyStart := lineEnd
			if bodyStart < len(content) {
				bodyStart++
			}
			return content[start:pos], content[bodyStart:], true
		}

		if next < 0 {
			break
		}
		pos = lineEnd + 1
	}

	return nil, content, false
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimSuffix(line, []byte("\r"))) == delimiter
}

// ParseTags reads the tags key of a YAML front matter block. The value may be
// a sequence of scalars or a single scalar. A missing or null key yields an
// empty set.
func ParseTags(fm []byte) (note.TagSet, error) {
	tags := note.NewTagSet()
	if len(bytes.TrimSpace(fm)) == 0 {
		return tags, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return tags, nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping", ErrMalformedFrontMatter)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != "tags" {
			continue
		}

		value := mapping.Content[i+1]
		switch value.Kind {
		case yaml.SequenceNode:
			for _, child := range value.Content {
				if child.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("%w: tags must be scalars", ErrMalformedFrontMatter)
				}
				if child.Tag == "!!null" || child.Value == "" {
					continue
				}
				tags[child.Value] = struct{}{}
			}
		case yaml.ScalarNode:
			if value.Tag != "!!null" && value.Value != "" {
				tags[value.Value] = struct{}{}
			}
		default:
			return nil, fmt.Errorf("%w: unsupported tags value", ErrMalformedFrontMatter)
		}
	}

	return tags, nil
}
