package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/nav/fragment"
	"github.com/shandysiswandi/gonav/internal/nav/history"
	"github.com/shandysiswandi/gonav/internal/nav/matcher"
	"github.com/shandysiswandi/gonav/internal/nav/pagecache"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

var (
	// ErrMissingFetcher is returned by New when PJAX is on without a Fetcher.
	ErrMissingFetcher = errors.New("router: pjax enabled without a fetcher")
	// ErrUnsafeURL rejects navigation targets that are not http(s) or relative.
	ErrUnsafeURL = errors.New("router: unsafe url")
)

type compiledRoute struct {
	route   *entity.Route
	matcher *matcher.Matcher
}

// Router is safe for concurrent use.
type Router struct {
	cfg      Config
	base     *url.URL
	fetcher  Fetcher
	renderer Renderer
	history  History
	fallback Fallback
	csrf     CSRF
	events   Publisher
	runner   Runner
	metrics  Metrics
	ids      pkguid.NumberID
	now      func() time.Time

	cache *pagecache.Cache
	group singleflight.Group

	mu          sync.RWMutex
	routes      []compiledRoute
	before      []BeforeHook
	after       []AfterHook
	onError     []ErrorHook
	current     *entity.Route
	currentPath string
	cancel      context.CancelFunc
	started     bool

	phase *atomic.Int32
	seq   *atomic.Uint64
}

// New builds a Router. Missing optional dependencies get in-memory defaults.
func New(dep Dependency) (*Router, error) {
	cfg := dep.Config
	if cfg.PJAX && dep.Fetcher == nil {
		return nil, ErrMissingFetcher
	}
	if cfg.PrefetchWorkers < 1 {
		cfg.PrefetchWorkers = DefaultConfig().PrefetchWorkers
	}

	r := &Router{
		cfg:      cfg,
		fetcher:  dep.Fetcher,
		renderer: dep.Renderer,
		history:  dep.History,
		fallback: dep.Fallback,
		csrf:     dep.CSRF,
		events:   dep.Events,
		runner:   dep.Runner,
		metrics:  dep.Metrics,
		ids:      dep.ID,
		now:      dep.Clock,
		cache:    pagecache.New(cfg.MaxCache),
		phase:    atomic.NewInt32(int32(entity.PhaseIdle)),
		seq:      atomic.NewUint64(0),
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("router: parse base url: %w", err)
		}
		r.base = base
	}

	if r.renderer == nil {
		r.renderer = fragment.NewDocument()
	}
	if r.history == nil {
		r.history = history.NewStack("/")
	}
	if r.fallback == nil {
		r.fallback = history.NewLocation(nil)
	}
	if r.runner == nil {
		r.runner = pkgroutine.NewManager(cfg.PrefetchWorkers)
	}
	if r.metrics == nil {
		r.metrics = nopMetrics{}
	}
	if r.now == nil {
		r.now = time.Now
	}

	return r, nil
}

// Route registers handler for pattern and returns the router for chaining.
// Earlier registrations win when several patterns match. An invalid pattern
// panics.
func (r *Router) Route(pattern string, handler entity.Handler, opts ...RouteOption) *Router {
	m, err := matcher.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("router: register %q: %v", pattern, err))
	}

	route := &entity.Route{
		Pattern:    m.Pattern(),
		ParamNames: m.Keys(),
		Handler:    handler,
	}
	for _, opt := range opts {
		opt(&route.Options)
	}

	r.mu.Lock()
	r.routes = append(r.routes, compiledRoute{route: route, matcher: m})
	r.mu.Unlock()

	return r
}

// Before registers a hook run before every navigation.
func (r *Router) Before(hook BeforeHook) *Router {
	r.mu.Lock()
	r.before = append(r.before, hook)
	r.mu.Unlock()

	return r
}

// After registers a hook run after every settled navigation.
func (r *Router) After(hook AfterHook) *Router {
	r.mu.Lock()
	r.after = append(r.after, hook)
	r.mu.Unlock()

	return r
}

// OnError registers a hook run when a navigation fails.
func (r *Router) OnError(hook ErrorHook) *Router {
	r.mu.Lock()
	r.onError = append(r.onError, hook)
	r.mu.Unlock()

	return r
}

// State returns a snapshot of the router state.
func (r *Router) State() entity.NavigationState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return entity.NavigationState{
		CurrentPath:  r.currentPath,
		CurrentRoute: r.current,
		Phase:        entity.Phase(r.phase.Load()),
		Seq:          r.seq.Load(),
	}
}

// Start resolves the current history entry and publishes router:ready. Only
// the first call does anything.
func (r *Router) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		slog.WarnContext(ctx, "router already started")
		return nil
	}
	r.started = true
	r.mu.Unlock()

	err := r.resolve(ctx, r.history.Current().Path, navigateOptions{trigger: true, state: r.history.Current().State})
	r.publish(ctx, entity.EventReady, r.history.Current().Path, nil, nil)

	return err
}

// URL builds the path of the route named name.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cr := range r.routes {
		if cr.route.Options.Name == name {
			return cr.matcher.Build(params), nil
		}
	}

	return "", fmt.Errorf("%w: %q", entity.ErrRouteNotFound, name)
}

// ClearCache drops the given paths from the page cache, or every page when
// called without paths.
func (r *Router) ClearCache(paths ...string) {
	if len(paths) == 0 {
		r.cache.InvalidateAll()
		return
	}

	for _, p := range paths {
		r.cache.Invalidate(matcher.Normalize(p))
	}
}

// Cached reports whether path is in the page cache.
func (r *Router) Cached(path string) bool {
	return r.cache.Has(matcher.Normalize(path))
}

func (r *Router) match(path string) (*entity.Route, entity.Params) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cr := range r.routes {
		if params, ok := cr.matcher.Match(path); ok {
			return cr.route, params
		}
	}

	return nil, nil
}

func (r *Router) currentRoute() (*entity.Route, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current, r.currentPath
}

// begin marks a navigation as started and cancels the one in flight.
func (r *Router) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	navCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	seq := r.seq.Inc()
	r.phase.Store(int32(entity.PhaseNavigating))
	r.mu.Unlock()

	return seq, navCtx, cancel
}

// supersede cancels the navigation in flight without starting a new one. It
// runs before a full page load takes over.
func (r *Router) supersede() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq.Inc()
	r.phase.Store(int32(entity.PhaseIdle))
}

func (r *Router) end(seq uint64, cancel context.CancelFunc) {
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seq.Load() == seq {
		r.cancel = nil
		r.phase.Store(int32(entity.PhaseIdle))
	}
}

func (r *Router) superseded(seq uint64) bool {
	return r.seq.Load() != seq
}

func (r *Router) publish(ctx context.Context, t entity.EventType, path string, route *entity.Route, cause error) {
	if r.events == nil {
		return
	}

	ev := entity.Event{Type: t, Path: path, At: r.now()}
	if r.ids != nil {
		ev.ID = r.ids.Generate()
	}
	if route != nil {
		ev.Route = route.Pattern
	}
	if cause != nil {
		ev.Err = cause.Error()
	}

	if err := r.events.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "failed to publish router event", "type", t, "path", path, "error", err)
	}
}
