package matcher

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
)

// WildcardKey is the param key given to a "*" capture.
const WildcardKey = "*"

// ErrEmptyPattern is returned by Compile for a blank pattern.
var ErrEmptyPattern = errors.New("matcher: empty pattern")

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenParam
	tokenWildcard
)

type token struct {
	kind  tokenKind
	value string
}

// Matcher is a compiled route pattern.
type Matcher struct {
	pattern string
	tokens  []token
	keys    []string
	re      *regexp.Regexp
}

// Compile turns a pattern such as "/users/:id/posts/:postId" into a Matcher.
//
// ":name" captures one or more non-slash characters and "*" captures
// anything, including slashes. The expression is anchored at both ends so a
// pattern never matches a longer path by prefix.
func Compile(pattern string) (*Matcher, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, ErrEmptyPattern
	}

	pattern = Normalize(pattern)
	tokens := tokenize(pattern)

	var (
		expr strings.Builder
		keys []string
	)
	expr.WriteString("^")
	for _, tk := range tokens {
		switch tk.kind {
		case tokenParam:
			expr.WriteString("([^/]+)")
			keys = append(keys, tk.value)
		case tokenWildcard:
			expr.WriteString("(.*)")
			keys = append(keys, WildcardKey)
		default:
			expr.WriteString(regexp.QuoteMeta(tk.value))
		}
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("matcher: compile %q: %w", pattern, err)
	}

	return &Matcher{pattern: pattern, tokens: tokens, keys: keys, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func tokenize(pattern string) []token {
	var (
		tokens  []token
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, value: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case ':':
			end := i + 1
			for end < len(pattern) && !isNameTerminator(pattern[end]) {
				end++
			}
			if end == i+1 {
				literal.WriteByte(c)
				continue
			}
			flush()
			tokens = append(tokens, token{kind: tokenParam, value: pattern[i+1 : end]})
			i = end - 1
		case '*':
			flush()
			tokens = append(tokens, token{kind: tokenWildcard})
		default:
			literal.WriteByte(c)
		}
	}
	flush()

	return tokens
}

func isNameTerminator(c byte) bool {
	return c == '/' || c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// Pattern returns the normalized pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Keys returns the param names in the order they appear.
func (m *Matcher) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Match reports whether path matches and returns the captured params in
// declaration order. The query string and fragment are ignored.
func (m *Matcher) Match(path string) (entity.Params, bool) {
	p, _ := SplitQuery(Normalize(path))

	groups := m.re.FindStringSubmatch(p)
	if groups == nil {
		return nil, false
	}

	params := make(entity.Params, 0, len(m.keys))
	for i, key := range m.keys {
		params = append(params, entity.Param{Key: key, Value: groups[i+1]})
	}

	return params, true
}

// Matches is Match without the params.
func (m *Matcher) Matches(path string) bool {
	_, ok := m.Match(path)
	return ok
}

// Build fills the pattern with params. Values are path-escaped, except the
// wildcard which may span segments. Missing params keep their placeholder.
func (m *Matcher) Build(params map[string]string) string {
	var b strings.Builder
	for _, tk := range m.tokens {
		switch tk.kind {
		case tokenParam:
			if v, ok := params[tk.value]; ok {
				b.WriteString(url.PathEscape(v))
			} else {
				b.WriteString(":" + tk.value)
			}
		case tokenWildcard:
			if v, ok := params[WildcardKey]; ok {
				b.WriteString(strings.TrimPrefix(v, "/"))
			} else {
				b.WriteString("*")
			}
		default:
			b.WriteString(tk.value)
		}
	}
	return b.String()
}
