package router

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/nav/fragment"
	"github.com/shandysiswandi/gonav/internal/nav/history"
)

func pageHTML(title, body string) string {
	return `<html><head><title>` + title + `</title></head><body><nav>menu</nav><div id="app">` + body + `</div></body></html>`
}

type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	errs    map[string]error
	calls   map[string]int
	blocked map[string]chan struct{}
	forms   []entity.Form
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:   map[string]string{},
		errs:    map[string]error{},
		calls:   map[string]int{},
		blocked: map[string]chan struct{}{},
	}
}

// block makes the next fetch of path wait for cancellation. The returned
// channel closes once that fetch started.
func (f *fakeFetcher) block(path string) <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan struct{})
	f.blocked[path] = ch
	return ch
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	f.calls[path]++
	started := f.blocked[path]
	delete(f.blocked, path)
	err := f.errs[path]
	html, ok := f.pages[path]
	f.mu.Unlock()

	if started != nil {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &entity.NetworkError{URL: path, Status: 404}
	}
	return html, nil
}

func (f *fakeFetcher) Submit(ctx context.Context, form entity.Form) (string, error) {
	f.mu.Lock()
	f.forms = append(f.forms, form)
	f.mu.Unlock()

	return f.Fetch(ctx, form.Action)
}

func (f *fakeFetcher) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

type recordedEvents struct {
	mu     sync.Mutex
	events []entity.Event
}

func (r *recordedEvents) Publish(ctx context.Context, e entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordedEvents) types() []entity.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeCSRF struct {
	token, nonce string
}

func (f fakeCSRF) Token() string { return f.token }
func (f fakeCSRF) Nonce() string { return f.nonce }
func (f fakeCSRF) AddToValues(v url.Values) {
	if f.token != "" {
		v.Set("_csrf", f.token)
	}
}

type seqID struct {
	mu sync.Mutex
	n  int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

type harness struct {
	router  *Router
	fetcher *fakeFetcher
	doc     *fragment.Document
	hist    *history.Stack
	loc     *history.Location
	events  *recordedEvents
}

func newHarness(t *testing.T, mutate func(*Config, *Dependency)) *harness {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Container = "#app"
	cfg.BaseURL = "http://localhost:8080"

	h := &harness{
		fetcher: newFakeFetcher(),
		doc:     fragment.NewDocument(),
		hist:    history.NewStack("/"),
		loc:     history.NewLocation(nil),
		events:  &recordedEvents{},
	}

	dep := Dependency{
		Fetcher:  h.fetcher,
		Renderer: h.doc,
		History:  h.hist,
		Fallback: h.loc,
		Events:   h.events,
		ID:       &seqID{},
	}
	if mutate != nil {
		mutate(&cfg, &dep)
	}
	dep.Config = cfg

	r, err := New(dep)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.router = r

	return h
}
