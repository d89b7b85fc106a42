// Package ignore implements the gitignore-like rules read from .zrtignore.
package ignore

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type rule struct {
	glob     string
	negate   bool
	anchored bool
}

// Patterns is an ordered set of ignore rules. The zero value ignores nothing.
type Patterns struct {
	rules []rule
}

// Add compiles a single .zrtignore line. Blank lines and comments are
// accepted and ignored.
func (p *Patterns) Add(line string) error {
	pattern := strings.TrimSpace(line)
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return nil
	}

	negate := false
	if stripped, ok := strings.CutPrefix(pattern, "!"); ok {
		pattern, negate = stripped, true
	}

	anchored := false
	if stripped, ok := strings.CutPrefix(pattern, "/"); ok {
		pattern, anchored = stripped, true
	}

	pattern = strings.ReplaceAll(pattern, "\\", "/")
	if pattern == "" {
		return nil
	}

	hasWildcard := strings.ContainsAny(pattern, "*?[{")

	glob := pattern
	switch {
	case hasWildcard:
	case strings.HasSuffix(pattern, "/"):
		if negate {
			glob = "**/" + pattern + "**/*"
		} else {
			glob = "**/" + pattern + "**"
		}
	case !strings.Contains(pattern, "/") || strings.Contains(pattern, ".") || negate:
	default:
		glob = pattern + "/**"
	}

	if !anchored && !strings.Contains(glob, "/") {
		glob = "**/" + glob
	}

	if !doublestar.ValidatePattern(glob) {
		return fmt.Errorf("invalid ignore pattern %q", line)
	}

	p.rules = append(p.rules, rule{glob: glob, negate: negate, anchored: anchored})
	return nil
}

// Match reports whether rel, a slash separated path relative to the scan
// root, is ignored. Negated rules win over every other rule.
func (p *Patterns) Match(rel string) bool {
	if p == nil || len(p.rules) == 0 {
		return false
	}

	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "./")
	name := path.Base(rel)

	for _, r := range p.rules {
		if r.negate && r.matches(rel, name) {
			return false
		}
	}

	for _, r := range p.rules {
		if !r.negate && r.matches(rel, name) {
			return true
		}
	}

	return false
}

func (r rule) matches(rel, name string) bool {
	// An anchored pattern without a separator only applies at the root.
	if r.anchored && !strings.Contains(r.glob, "/") && strings.Contains(rel, "/") {
		return false
	}
	return doublestar.MatchUnvalidated(r.glob, rel) || doublestar.MatchUnvalidated(r.glob, name)
}

// Len returns the number of compiled rules.
func (p *Patterns) Len() int {
	if p == nil {
		return 0
	}
	return len(p.rules)
}
