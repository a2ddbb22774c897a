package corpus

import (
	"fmt"
	"path/filepath"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// patternCacheSize caps the compiled-regex cache. Configuration is re-read
// per enumeration, so the same pattern strings recur across Excluder
// constructions in long-lived library callers.
const patternCacheSize = 128

// patternCache memoizes compiled exclusion regexes by pattern source.
// Compilation is deterministic, so sharing entries across instances is safe.
var patternCache, _ = lru.New[string, *regexp.Regexp](patternCacheSize)

// Excluder holds compiled exclusion rules. A path is excluded when any rule
// matches; rules never un-exclude.
type Excluder struct {
	regexps []*regexp.Regexp
}

// NewExcluder compiles the given exclusion patterns. Each pattern is a
// regular expression searched (unanchored) against root-relative paths.
// A pattern that does not compile is a validation error.
func NewExcluder(patterns []string) (*Excluder, error) {
	ex := &Excluder{regexps: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := compilePattern(p)
		if err != nil {
			return nil, roveerrors.New(roveerrors.ErrCodeBadPattern,
				fmt.Sprintf("invalid exclusion pattern %q: %v", p, err), err).
				WithDetail("pattern", p)
		}
		ex.regexps = append(ex.regexps, re)
	}
	return ex, nil
}

// Excluded reports whether the root-relative path rel matches any exclusion
// pattern. Patterns are a pure disjunction; evaluation order is irrelevant.
// Separators are normalized to forward slashes before matching so rules
// behave the same on every platform.
func (e *Excluder) Excluded(rel string) bool {
	if len(e.regexps) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, re := range e.regexps {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled rules.
func (e *Excluder) Len() int {
	return len(e.regexps)
}

// compilePattern compiles pattern, consulting the shared cache first.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Add(pattern, re)
	return re, nil
}
