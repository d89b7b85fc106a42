package flags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/zrt/internal/filter"
	"github.com/Paintersrp/zrt/internal/listing"
	"github.com/Paintersrp/zrt/internal/note"
)

// Listing is the resolved form of the listing flags.
type Listing struct {
	Predicate filter.Predicate
	Spec      listing.SortSpec
	ShowWords bool
	// Active is set when any listing flag was given.
	Active bool
}

var listingFlags = []string{"wordcount", "filter", "only", "pattern", "since", "sort", "num"}

// AddListing registers the tag predicate, sort and limit flags.
func AddListing(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringP("filter", "f", "", "Only list notes lacking this tag")
	fs.StringP("only", "o", "", "Only list notes whose single tag is this tag")
	fs.StringP("pattern", "p", "", "Only list notes carrying this tag")
	fs.BoolP("wordcount", "w", false, "Sort by word count and show counts")
	fs.IntP("num", "n", 0, "Limit output to the top N notes (default: config top in word count mode)")
	fs.String("since", "", "Only list notes modified since this date")
	fs.String("sort", "", "Sort key: words, path or scan")

	cmd.MarkFlagsMutuallyExclusive("filter", "only", "pattern")
}

// HandleListing turns the listing flags into a predicate and sort spec.
func HandleListing(cmd *cobra.Command) (Listing, error) {
	fs := cmd.Flags()
	var out Listing

	for _, name := range listingFlags {
		if fs.Changed(name) {
			out.Active = true
			break
		}
	}

	var predicates []filter.Predicate
	if tag, _ := fs.GetString("filter"); fs.Changed("filter") {
		predicates = append(predicates, filter.LacksTag(tag))
	}
	if tag, _ := fs.GetString("only"); fs.Changed("only") {
		predicates = append(predicates, filter.OnlyTag(tag))
	}
	if tag, _ := fs.GetString("pattern"); fs.Changed("pattern") {
		predicates = append(predicates, filter.HasTag(tag))
	}

	if since, _ := fs.GetString("since"); strings.TrimSpace(since) != "" {
		t, err := dateparse.ParseLocal(since)
		if err != nil {
			return Listing{}, fmt.Errorf("invalid --since value %q: %w", since, err)
		}
		predicates = append(predicates, filter.ModifiedSince(t))
	}
	out.Predicate = filter.All(predicates...)

	words, _ := fs.GetBool("wordcount")
	if words {
		out.Spec.Key = listing.ByWords
	}
	if fs.Changed("sort") {
		raw, _ := fs.GetString("sort")
		key, err := listing.ParseSortKey(raw)
		if err != nil {
			return Listing{}, err
		}
		out.Spec.Key = key
	}
	out.ShowWords = words || out.Spec.Key == listing.ByWords

	switch {
	case fs.Changed("num"):
		n, _ := fs.GetInt("num")
		if n < 0 {
			return Listing{}, errors.New("--num must not be negative")
		}
		out.Spec.Limit = &n
	case words:
		n := viper.GetInt("top")
		out.Spec.Limit = &n
	}

	return out, nil
}

// Apply filters, sorts and limits records as requested.
func (l Listing) Apply(records []note.Record) []note.Record {
	return listing.Apply(filter.Apply(records, l.Predicate), l.Spec)
}
