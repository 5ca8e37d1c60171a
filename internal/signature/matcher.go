package signature

import (
	"github.com/dlclark/regexp2"
)

// Matcher is one case-sensitivity-flagged regular expression rule.
// A Matcher is safe for concurrent use.
type Matcher struct {
	Pattern       string
	CaseSensitive bool

	re *regexp2.Regexp
}

// Compile builds a Matcher from a pattern.
func Compile(pattern string, caseSensitive bool) (*Matcher, error) {
	var opts regexp2.RegexOptions = regexp2.IgnoreCase
	if caseSensitive {
		opts = regexp2.None
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}

	return &Matcher{
		Pattern:       pattern,
		CaseSensitive: caseSensitive,
		re:            re,
	}, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
// It is meant for the static registry.
func MustCompile(pattern string, caseSensitive bool) *Matcher {
	m, err := Compile(pattern, caseSensitive)
	if err != nil {
		panic("signature: invalid pattern " + pattern + ": " + err.Error())
	}
	return m
}

// MatchString reports whether the pattern occurs anywhere in s.
// Matching has no timeout, so the result depends only on s.
func (m *Matcher) MatchString(s string) bool {
	if s == "" {
		return false
	}
	// regexp2 only fails on a match timeout, and none is set.
	ok, _ := m.re.MatchString(s)
	return ok
}

func (m *Matcher) String() string {
	return m.Pattern
}

// insensitive compiles case-insensitive matchers.
func insensitive(patterns ...string) []*Matcher {
	out := make([]*Matcher, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, MustCompile(p, false))
	}
	return out
}

// sensitive compiles case-sensitive matchers.
func sensitive(patterns ...string) []*Matcher {
	out := make([]*Matcher, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, MustCompile(p, true))
	}
	return out
}
