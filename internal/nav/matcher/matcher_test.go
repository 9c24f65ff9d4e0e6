package matcher

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		ok      bool
		params  entity.Params
	}{
		{name: "single param", pattern: "/users/:id", path: "/users/42", ok: true, params: entity.Params{{Key: "id", Value: "42"}}},
		{name: "extra segment", pattern: "/users/:id", path: "/users/42/extra", ok: false},
		{name: "missing segment", pattern: "/users/:id", path: "/users", ok: false},
		{name: "empty param", pattern: "/users/:id", path: "/users/", ok: false},
		{name: "trailing slash on path", pattern: "/about", path: "/about/", ok: true, params: entity.Params{}},
		{name: "trailing slash on pattern", pattern: "/about/", path: "/about", ok: true, params: entity.Params{}},
		{name: "root", pattern: "/", path: "/", ok: true, params: entity.Params{}},
		{name: "root does not match child", pattern: "/", path: "/a", ok: false},
		{
			name:    "two params in order",
			pattern: "/users/:id/posts/:postId",
			path:    "/users/9/posts/77",
			ok:      true,
			params:  entity.Params{{Key: "id", Value: "9"}, {Key: "postId", Value: "77"}},
		},
		{name: "query ignored", pattern: "/post/:id", path: "/post/7?ref=home#top", ok: true, params: entity.Params{{Key: "id", Value: "7"}}},
		{name: "literal mismatch", pattern: "/post/:id", path: "/posts/7", ok: false},
		{name: "wildcard spans segments", pattern: "/files/*", path: "/files/a/b/c.txt", ok: true, params: entity.Params{{Key: "*", Value: "a/b/c.txt"}}},
		{name: "catch all", pattern: "*", path: "/anything/at/all", ok: true, params: entity.Params{{Key: "*", Value: "/anything/at/all"}}},
		{name: "regex metacharacters are literal", pattern: "/a.b/:id", path: "/axb/1", ok: false},
		{name: "dotted literal", pattern: "/a.b/:id", path: "/a.b/1", ok: true, params: entity.Params{{Key: "id", Value: "1"}}},
		{name: "param with extension", pattern: "/img/:name", path: "/img/logo.png", ok: true, params: entity.Params{{Key: "name", Value: "logo.png"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}

			params, ok := m.Match(tt.path)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if !reflect.DeepEqual(params, tt.params) {
				t.Fatalf("Match(%q) params = %#v, want %#v", tt.path, params, tt.params)
			}
			if m.Matches(tt.path) != tt.ok {
				t.Fatalf("Matches disagrees with Match")
			}
		})
	}
}

func TestParamCountFollowsDeclaration(t *testing.T) {
	patterns := map[string][]string{
		"/a/:x":          {"x"},
		"/a/:x/b/:y":     {"x", "y"},
		"/:p1/:p2/:p3":   {"p1", "p2", "p3"},
		"/static/only":   nil,
		"/mix/:id/*":     {"id", "*"},
		"/v/:major.:min": {"major.:min"},
	}

	for pattern, keys := range patterns {
		m := MustCompile(pattern)
		if got := m.Keys(); !reflect.DeepEqual(got, keys) {
			t.Fatalf("Keys(%q) = %#v, want %#v", pattern, got, keys)
		}
	}

	m := MustCompile("/:p1/:p2/:p3")
	params, ok := m.Match("/x/y/z")
	if !ok || len(params) != 3 {
		t.Fatalf("expected 3 params, got %v (ok=%v)", params, ok)
	}
	if !reflect.DeepEqual(params.Keys(), []string{"p1", "p2", "p3"}) {
		t.Fatalf("params not in declared order: %v", params.Keys())
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(""); !errors.Is(err, ErrEmptyPattern) {
		t.Fatalf("expected ErrEmptyPattern, got %v", err)
	}
	if _, err := Compile("   "); !errors.Is(err, ErrEmptyPattern) {
		t.Fatalf("expected ErrEmptyPattern for blank pattern, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustCompile to panic")
		}
	}()
	MustCompile("")
}

func TestLoneColonIsLiteral(t *testing.T) {
	m := MustCompile("/a/:/b")
	if len(m.Keys()) != 0 {
		t.Fatalf("expected no keys, got %v", m.Keys())
	}
	if !m.Matches("/a/:/b") {
		t.Fatalf("expected literal colon to match")
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		pattern string
		params  map[string]string
		want    string
	}{
		{pattern: "/users/:id", params: map[string]string{"id": "42"}, want: "/users/42"},
		{pattern: "/users/:id/posts/:postId", params: map[string]string{"id": "1", "postId": "2"}, want: "/users/1/posts/2"},
		{pattern: "/users/:id", params: nil, want: "/users/:id"},
		{pattern: "/search/:q", params: map[string]string{"q": "a b/c"}, want: "/search/a%20b%2Fc"},
		{pattern: "/files/*", params: map[string]string{"*": "/docs/readme.md"}, want: "/files/docs/readme.md"},
	}

	for _, tt := range tests {
		if got := MustCompile(tt.pattern).Build(tt.params); got != tt.want {
			t.Fatalf("Build(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":              "/",
		"/":             "/",
		"/about":        "/about",
		"/about/":       "/about",
		"/about/?x=1":   "/about?x=1",
		"/about?next=/": "/about?next=/",
		"?x=1":          "/?x=1",
		"/a/b/#frag":    "/a/b",
	}

	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}

	if got := Normalize("/about/?x=1#top"); got != "/about?x=1" {
		t.Fatalf("expected fragment dropped after the query, got %q", got)
	}

	if Normalize("/about/") != Normalize("/about") {
		t.Fatalf("trailing slash variants must share a key")
	}
}

func TestSplitAndParseQuery(t *testing.T) {
	p, q := SplitQuery("/search?q=go&page=2#results")
	if p != "/search" || q != "q=go&page=2" {
		t.Fatalf("SplitQuery = %q, %q", p, q)
	}

	got := ParseQuery("/search?q=hello%20world&page=2&page=3&flag&&bad=%zz")
	want := map[string]string{"q": "hello world", "page": "3", "flag": "", "bad": "%zz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseQuery = %#v, want %#v", got, want)
	}

	if got := ParseQuery("/plain"); len(got) != 0 {
		t.Fatalf("expected empty query map, got %#v", got)
	}
}
