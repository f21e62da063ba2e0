package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// matchTypes maps a block's type token to the expression it captures. Types
// not listed here pass through verbatim, which is how literal alternations
// like [get|post:verb] and hand-written classes work.
//
// RE2 has no possessive quantifiers and no backtracking, so plain greedy
// repetition on the fixed classes behaves identically.
var matchTypes = map[string]string{
	"i":  "[0-9]+",
	"a":  "[0-9A-Za-z]+",
	"h":  "[0-9A-Fa-f]+",
	"s":  "[0-9A-Za-z_-]+",
	"*":  ".+?",
	"**": ".+",
	"":   "[^/]+?",
}

// Matcher is a compiled route pattern: an anchored regular expression with
// named capture groups, plus the literal prefix used for fast rejection.
type Matcher struct {
	// Pattern is the source text the matcher was compiled from.
	Pattern string

	// Prefix is the literal run every matching path begins with. Empty for
	// verbatim expressions, which carry no such guarantee.
	Prefix string

	re    *regexp.Regexp
	names []string
}

// Compile translates a route pattern into a Matcher. Literal runs are
// escaped, placeholder blocks become grouped sub-expressions, and the result
// is anchored to the whole path. A synthesis the regexp engine rejects
// (malformed verbatim type, bad or duplicate capture name) comes back as
// *Error carrying the engine diagnostic.
func Compile(pat string) (*Matcher, error) {
	var b strings.Builder
	b.Grow(len(pat) + 16)
	b.WriteByte('^')

	last := 0
	for _, blk := range Parse(pat) {
		b.WriteString(regexp.QuoteMeta(pat[last:blk.Start]))
		writeBlock(&b, blk)
		last = blk.End
	}
	b.WriteString(regexp.QuoteMeta(pat[last:]))
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &Error{Pattern: pat, Expr: b.String(), cause: err}
	}
	return &Matcher{
		Pattern: pat,
		Prefix:  LiteralPrefix(pat),
		re:      re,
		names:   re.SubexpNames(),
	}, nil
}

// writeBlock expands one placeholder. Separator and optionality fold into an
// enclosing non-capturing group quantified as a whole, so "/x/[i:id]?"
// accepts "/x" but never a bare "/x/".
func writeBlock(b *strings.Builder, blk Block) {
	inner, ok := matchTypes[blk.Type]
	if !ok {
		inner = blk.Type
	}

	b.WriteString("(?:")
	if blk.Sep != "" {
		b.WriteString(regexp.QuoteMeta(blk.Sep))
	}
	b.WriteByte('(')
	if blk.Name != "" {
		b.WriteString("?P<")
		b.WriteString(blk.Name)
		b.WriteByte('>')
	}
	b.WriteString(inner)
	b.WriteString("))")
	if blk.Optional {
		b.WriteByte('?')
	}
}

// CompileVerbatim wraps expr, a plain regular expression, without escaping
// or anchoring, so partial path matches work the way regexp.MatchString
// would.
func CompileVerbatim(expr string) (*Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &Error{Pattern: expr, Expr: expr, cause: err}
	}
	return &Matcher{Pattern: expr, re: re, names: re.SubexpNames()}, nil
}

// Match runs the matcher against path. Captures whose group participated in
// the match come back raw and undecoded; decoding is the caller's job and
// must happen after matching, never before.
func (m *Matcher) Match(path string) (map[string]string, bool) {
	idx := m.re.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}
	var params map[string]string
	for i := 1; i < len(m.names); i++ {
		name := m.names[i]
		if name == "" || idx[2*i] < 0 {
			continue
		}
		if params == nil {
			params = make(map[string]string, len(m.names)-1)
		}
		params[name] = path[idx[2*i]:idx[2*i+1]]
	}
	return params, true
}

// MatchString reports whether path matches, without extracting captures.
func (m *Matcher) MatchString(path string) bool {
	return m.re.MatchString(path)
}

// Names returns the capture names in group order, "" for unnamed groups.
func (m *Matcher) Names() []string {
	return m.names[1:]
}

// Expr returns the synthesized regular expression, mainly for diagnostics.
func (m *Matcher) Expr() string { return m.re.String() }

// Error reports a pattern whose synthesized expression the regexp engine
// rejected.
type Error struct {
	Pattern string // pattern as registered
	Expr    string // expression handed to the engine
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pattern %q: %v", e.Pattern, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }
