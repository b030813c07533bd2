package search

import (
	"bytes"
	"regexp"

	"golang.org/x/xerrors"
)

// Mode selects how the configured pattern is interpreted.
type Mode int

const (
	ModeLiteral Mode = iota
	ModeRegexp
)

// Matcher decides whether the full contents of a file match the pattern.
// A matcher is built once before the workers start and is read-only after
// that, so all workers share it without synchronization.
type Matcher func(contents []byte) bool

// NewLiteral matches on byte-exact containment of pattern.
// Case-sensitive, no normalization. An empty pattern matches everything,
// including an empty file.
func NewLiteral(pattern string) Matcher {
	needle := []byte(pattern)
	return func(contents []byte) bool {
		return bytes.Contains(contents, needle)
	}
}

// NewRegexp compiles pattern once and matches any substring of the contents
// (unanchored). Compilation failures surface here, before any file is opened.
func NewRegexp(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, xerrors.Errorf("compile pattern %q: %w", pattern, err)
	}
	return re.Match, nil
}

// Compile builds the matcher for the given mode.
func Compile(pattern string, mode Mode) (Matcher, error) {
	if mode == ModeRegexp {
		return NewRegexp(pattern)
	}
	return NewLiteral(pattern), nil
}
