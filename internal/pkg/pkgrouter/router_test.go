package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/gonav/internal/pkg/pkgerror"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func TestRouterHealth(t *testing.T) {
	router := NewRouter(fixedID("cid-health"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "cid-health" {
		t.Fatalf("expected correlation header, got %q", got)
	}
}

func TestRouterFallbackServesUnknownPaths(t *testing.T) {
	router := NewRouter(fixedID("cid"))

	var gotPath string
	router.Fallback(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<p>page</p>"))
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotPath != "/about" {
		t.Fatalf("expected fallback to see /about, got %q", gotPath)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "cid" {
		t.Fatalf("expected fallback behind middleware, got cid %q", got)
	}
}

func TestRouterWithoutFallbackReturnsJSON404(t *testing.T) {
	router := NewRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouterEndpointErrorMapping(t *testing.T) {
	router := NewRouter(nil)
	router.GET("/forbidden", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, pkgerror.NewForbidden("csrf token mismatch")
	})
	router.GET("/boom", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, errors.New("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "csrf token mismatch" {
		t.Fatalf("unexpected message %q", body.Message)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestMaskHeadersHidesCSRF(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-CSRF-Token", "secret-token")

	if got := maskHeaders(headers).Get("X-CSRF-Token"); got != "***" {
		t.Fatalf("expected csrf header masked, got %q", got)
	}

	parsed := parseAndMaskBody("application/x-www-form-urlencoded", []byte("_csrf=secret&q=go"))
	m, ok := parsed.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", parsed)
	}
	if m["_csrf"] != "***" || m["q"] != "go" {
		t.Fatalf("unexpected masked form: %v", m)
	}
}

func TestRecovererAnswersInTheRequestedFormat(t *testing.T) {
	router := NewRouter(nil)
	router.Fallback(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("template exploded")
	}))

	tests := []struct {
		name        string
		header      string
		value       string
		contentType string
	}{
		{name: "pjax", header: headerPJAX, value: "true", contentType: "text/html; charset=utf-8"},
		{name: "browser", header: "Accept", value: "text/html,application/xhtml+xml", contentType: "text/html; charset=utf-8"},
		{name: "api", header: "Accept", value: "application/json", contentType: "application/json; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/about", nil)
			req.Header.Set(tt.header, tt.value)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Fatalf("expected %q, got %q", tt.contentType, got)
			}
		})
	}
}

func TestStackFramesKeepsModuleFrames(t *testing.T) {
	stack := []byte("goroutine 1 [running]:\n" +
		"runtime/debug.Stack()\n" +
		"\t/usr/local/go/src/runtime/debug/stack.go:26 +0x5e\n" +
		"github.com/shandysiswandi/gonav/internal/nav/inbound.(*HTTPEndpoint).ServeHTTP()\n" +
		"\t/src/gonav/internal/nav/inbound/http_endpoint.go:42 +0x1d\n")

	got := stackFrames(stack)
	if len(got) != 1 || got[0] != "internal/nav/inbound/http_endpoint.go:42" {
		t.Fatalf("unexpected frames %#v", got)
	}
}
