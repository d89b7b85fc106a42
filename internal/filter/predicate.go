// Package filter selects note records by their tags.
package filter

import (
	"time"

	"github.com/Paintersrp/zrt/internal/note"
)

// Predicate decides whether a record survives the listing.
type Predicate interface {
	Match(r note.Record) bool
}

// HasTag keeps records carrying the tag.
type HasTag string

func (t HasTag) Match(r note.Record) bool {
	return r.Tags.Has(string(t))
}

// LacksTag keeps records without the tag.
type LacksTag string

func (t LacksTag) Match(r note.Record) bool {
	return !r.Tags.Has(string(t))
}

// OnlyTag keeps records whose tag set is exactly {tag}.
type OnlyTag string

func (t OnlyTag) Match(r note.Record) bool {
	return r.Tags.Only(string(t))
}

// ModifiedSince keeps records modified at or after the instant.
type ModifiedSince time.Time

func (t ModifiedSince) Match(r note.Record) bool {
	return !r.ModifiedAt.Before(time.Time(t))
}

type all []Predicate

func (ps all) Match(r note.Record) bool {
	for _, p := range ps {
		if !p.Match(r) {
			return false
		}
	}
	return true
}

// All is the conjunction of ps. Nil entries are dropped; with no predicates
// every record matches.
func All(ps ...Predicate) Predicate {
	kept := make(all, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			kept = append(kept, p)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return kept
}

// Apply returns the records matching p in their original order. A nil
// predicate keeps everything.
func Apply(records []note.Record, p Predicate) []note.Record {
	out := make([]note.Record, 0, len(records))
	for _, r := range records {
		if p == nil || p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
