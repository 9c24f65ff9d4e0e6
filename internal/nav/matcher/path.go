package matcher

import (
	"net/url"
	"strings"
)

// Normalize strips one trailing slash from the path part, except for the
// root, and drops any fragment. The query string is kept as it is. An empty
// input, or one that is only a query, is rooted at "/".
func Normalize(path string) string {
	if idx := strings.IndexByte(path, '#'); idx >= 0 {
		path = path[:idx]
	}

	p, tail := path, ""
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		p, tail = path[:idx], path[idx:]
	}

	if p == "" {
		p = "/"
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}

	return p + tail
}

// SplitQuery separates the path from its query string. Any fragment is dropped.
func SplitQuery(path string) (string, string) {
	if idx := strings.IndexByte(path, '#'); idx >= 0 {
		path = path[:idx]
	}
	p, query, _ := strings.Cut(path, "?")
	return p, query
}

// ParseQuery decodes the query string of path into a flat map. A key that
// appears more than once keeps its last value. Values that fail to decode
// are kept raw.
func ParseQuery(path string) map[string]string {
	_, query := SplitQuery(path)
	params := map[string]string{}
	if query == "" {
		return params
	}

	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		params[unescape(key)] = unescape(value)
	}

	return params
}

func unescape(s string) string {
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}
