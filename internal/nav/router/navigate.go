package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/nav/fragment"
	"github.com/shandysiswandi/gonav/internal/nav/matcher"
	"github.com/shandysiswandi/gonav/internal/nav/security"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgmetrics"
)

// Navigate moves to path. It updates the history and, unless WithTrigger(false)
// is given, resolves the route.
//
// Load failures end in a full page load and return nil once the fallback
// succeeded. A navigation canceled by a newer one returns
// entity.ErrSuperseded. A handler error is returned unless an error hook
// handled it.
func (r *Router) Navigate(ctx context.Context, path string, opts ...NavigateOption) error {
	o := navigateOptions{trigger: true, scroll: r.cfg.ScrollToTop}
	for _, opt := range opts {
		opt(&o)
	}

	if !security.IsValidURL(path) {
		return fmt.Errorf("%w: %q", ErrUnsafeURL, path)
	}

	local, ok := r.localPath(path)
	if !ok {
		r.supersede()
		return r.fallbackTo(ctx, path, nil)
	}
	path = matcher.Normalize(local)

	if path == r.history.Current().Path && !o.trigger {
		return nil
	}

	if o.replace {
		r.history.Replace(path, o.state)
	} else {
		r.history.Push(path, o.state)
	}

	if !o.trigger {
		return nil
	}

	return r.resolve(ctx, path, o)
}

// Back resolves the previous history entry without scrolling.
func (r *Router) Back(ctx context.Context) error {
	entry, ok := r.history.Back()
	if !ok {
		return nil
	}

	return r.resolve(ctx, entry.Path, navigateOptions{trigger: true, state: entry.State})
}

// Forward resolves the next history entry without scrolling.
func (r *Router) Forward(ctx context.Context) error {
	entry, ok := r.history.Forward()
	if !ok {
		return nil
	}

	return r.resolve(ctx, entry.Path, navigateOptions{trigger: true, state: entry.State})
}

// Reload resolves the current entry again. With bypassCache the cached page
// is dropped first.
func (r *Router) Reload(ctx context.Context, bypassCache bool) error {
	entry := r.history.Current()
	if bypassCache {
		r.cache.Invalidate(entry.Path)
	}

	return r.resolve(ctx, entry.Path, navigateOptions{trigger: true, state: entry.State})
}

// localPath strips the origin from same-origin absolute URLs. It returns
// false for URLs on another origin.
func (r *Router) localPath(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if !u.IsAbs() && u.Host == "" {
		return raw, true
	}
	if r.base == nil || !security.IsSameOrigin(r.base, raw) {
		return "", false
	}

	return u.RequestURI(), true
}

func (r *Router) resolve(ctx context.Context, path string, o navigateOptions) error {
	route, params := r.match(path)
	from, fromPath := r.currentRoute()

	r.mu.RLock()
	before := append([]BeforeHook(nil), r.before...)
	r.mu.RUnlock()

	bc := &BeforeContext{Path: path, Route: route, From: from, FromPath: fromPath}
	for _, hook := range before {
		hook(ctx, bc)
		if bc.Canceled() {
			slog.DebugContext(ctx, "navigation canceled by before hook", "path", path)
			r.metrics.NavigationDone(pkgmetrics.OutcomeCanceled)
			return nil
		}
	}

	if route == nil {
		r.supersede()
		return r.fallbackTo(ctx, path, entity.ErrNoRoute)
	}

	seq, navCtx, cancel := r.begin(ctx)
	defer r.end(seq, cancel)

	r.publish(ctx, entity.EventBeforeLoad, path, route, nil)

	var page *entity.Page
	if r.cfg.PJAX {
		raw, err := r.load(navCtx, path, route)
		if err != nil {
			return r.fail(ctx, path, route, err)
		}

		p, err := r.page(raw, path, o.scroll)
		if err != nil {
			return r.fail(ctx, path, route, err)
		}
		page = &p
	}

	c := &entity.Context{
		Path:   path,
		Params: params,
		Query:  matcher.ParseQuery(path),
		State:  o.state,
		Route:  route,
		Page:   page,
	}

	var (
		ran       bool
		renderErr error
	)
	terminal := func(hctx context.Context, c *entity.Context) error {
		if r.superseded(seq) {
			return entity.ErrSuperseded
		}
		if c.Page != nil {
			if err := r.renderer.Render(hctx, *c.Page); err != nil {
				renderErr = err
				return err
			}
		}
		if route.Handler != nil {
			if err := route.Handler(hctx, c); err != nil {
				return err
			}
		}
		ran = true
		return nil
	}

	err := chain(terminal, route.Options.Middleware)(navCtx, c)
	switch {
	case renderErr != nil:
		return r.fail(ctx, path, route, renderErr)
	case errors.Is(err, entity.ErrSuperseded):
		r.metrics.NavigationDone(pkgmetrics.OutcomeSuperseded)
		return entity.ErrSuperseded
	case err != nil:
		return r.handlerFailed(ctx, path, route, err)
	case !ran:
		slog.DebugContext(ctx, "navigation stopped by middleware", "path", path, "route", route.Pattern)
		r.metrics.NavigationDone(pkgmetrics.OutcomeCanceled)
		return nil
	}

	r.settle(ctx, path, route)
	return nil
}

func chain(h entity.Handler, mws []entity.Middleware) entity.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// load returns the page HTML from the cache or the fetcher. Pages of
// cacheable routes are stored after a fetch.
func (r *Router) load(ctx context.Context, path string, route *entity.Route) (string, error) {
	cacheable := route.CacheEnabled(r.cfg.CachePages)

	if cacheable {
		raw, ok := r.cache.Get(path)
		r.metrics.CacheLookup(ok)
		if ok {
			return raw, nil
		}
	}

	raw, err := r.fetcher.Fetch(ctx, path)
	if err != nil {
		return "", err
	}

	if cacheable {
		r.cache.Put(path, raw)
	}

	return raw, nil
}

func (r *Router) page(raw, path string, scroll bool) (entity.Page, error) {
	p, err := fragment.Extract(raw, r.cfg.Container)
	if err != nil {
		return entity.Page{}, err
	}

	if r.csrf != nil {
		if nonce := r.csrf.Nonce(); nonce != "" {
			content, err := fragment.ApplyNonce(p.Content, nonce)
			if err != nil {
				return entity.Page{}, err
			}
			p.Content = content
		}
	}

	if !r.cfg.UpdateTitle {
		p.Title = ""
	}
	p.Path = path
	p.Scroll = scroll && r.cfg.ScrollToTop

	return p, nil
}

func (r *Router) settle(ctx context.Context, path string, route *entity.Route) {
	r.mu.Lock()
	from, fromPath := r.current, r.currentPath
	r.current, r.currentPath = route, path
	after := append([]AfterHook(nil), r.after...)
	r.mu.Unlock()

	ac := AfterContext{Path: path, Route: route, From: from, FromPath: fromPath}
	for _, hook := range after {
		hook(ctx, ac)
	}

	r.publish(ctx, entity.EventComplete, path, route, nil)
	r.metrics.NavigationDone(pkgmetrics.OutcomeSuccess)
}

// fail handles a load failure. Canceled fetches stop here, everything else
// goes through the error hooks and then the fallback.
func (r *Router) fail(ctx context.Context, path string, route *entity.Route, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		slog.DebugContext(ctx, "navigation superseded", "path", path)
		r.metrics.NavigationDone(pkgmetrics.OutcomeSuperseded)
		return entity.ErrSuperseded
	}
	if cerr := ctx.Err(); cerr != nil {
		r.metrics.NavigationDone(pkgmetrics.OutcomeCanceled)
		return cerr
	}

	slog.WarnContext(ctx, "failed to load page", "path", path, "error", err)
	r.publish(ctx, entity.EventError, path, route, err)

	if r.runErrorHooks(ctx, &ErrorContext{Err: err, Path: path, Route: route}) {
		r.metrics.NavigationDone(pkgmetrics.OutcomeError)
		return nil
	}

	return r.fallbackTo(ctx, path, err)
}

func (r *Router) handlerFailed(ctx context.Context, path string, route *entity.Route, err error) error {
	slog.ErrorContext(ctx, "route handler failed", "path", path, "route", route.Pattern, "error", err)
	r.publish(ctx, entity.EventError, path, route, err)
	r.metrics.NavigationDone(pkgmetrics.OutcomeError)

	if r.runErrorHooks(ctx, &ErrorContext{Err: err, Path: path, Route: route}) {
		return nil
	}

	return fmt.Errorf("route %s: %w", route.Pattern, err)
}

func (r *Router) runErrorHooks(ctx context.Context, ec *ErrorContext) bool {
	r.mu.RLock()
	hooks := append([]ErrorHook(nil), r.onError...)
	r.mu.RUnlock()

	for _, hook := range hooks {
		hook(ctx, ec)
		if ec.Handled {
			return true
		}
	}

	return false
}

func (r *Router) fallbackTo(ctx context.Context, path string, cause error) error {
	slog.WarnContext(ctx, "falling back to full page load", "path", path, "cause", cause)
	r.metrics.NavigationDone(pkgmetrics.OutcomeFallback)

	if err := r.fallback.Assign(ctx, path); err != nil {
		if cause == nil {
			return fmt.Errorf("fallback %s: %w", path, err)
		}
		return errors.Join(cause, fmt.Errorf("fallback %s: %w", path, err))
	}

	return nil
}

func isGet(method string) bool {
	m := strings.ToUpper(strings.TrimSpace(method))
	return m == "" || m == "GET"
}
