// Package glob wraps shell-style pattern matching for remote filenames.
// An empty pattern matches everything, which is how a whole-homework
// reference selects every file.
package glob

import (
	"github.com/bmatcuk/doublestar/v4"

	"gsc/internal/errors"
)

// Matcher matches remote filenames against one compiled pattern.
type Matcher struct {
	pattern string
}

// New compiles a matcher for the given pattern. The empty pattern
// becomes match-all; invalid glob syntax is reported as a PatternError
// rather than deferred to match time.
func New(pattern string) (Matcher, error) {
	real := pattern
	if real == "" {
		real = "*"
	}
	if !doublestar.ValidatePattern(real) {
		return Matcher{}, errors.NewPatternError(pattern, doublestar.ErrBadPattern)
	}
	return Matcher{pattern: real}, nil
}

// Match reports whether the filename matches the pattern. Remote names
// have no directory structure, so matching is against the whole name.
func (m Matcher) Match(name string) bool {
	ok, err := doublestar.Match(m.pattern, name)
	return err == nil && ok
}
