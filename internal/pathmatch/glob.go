// Package pathmatch compiles and evaluates the glob patterns used by
// positional-argument and file-path rules. "**" spans "/"; a bare "*"
// does not, matching github.com/bmatcuk/doublestar/v4's semantics.
package pathmatch

import "github.com/bmatcuk/doublestar/v4"

// Pattern is a glob pattern kept as its raw text; each Match call hands
// that text to doublestar.
type Pattern struct {
	Raw string
}

// Compile validates a glob pattern eagerly so a malformed pattern is
// reported at config-load time rather than at match time.
func Compile(raw string) (Pattern, error) {
	if _, err := doublestar.Match(raw, ""); err != nil {
		return Pattern{}, err
	}
	return Pattern{Raw: raw}, nil
}

// Match reports whether value matches the pattern.
func (p Pattern) Match(value string) (bool, error) {
	return doublestar.Match(p.Raw, value)
}
