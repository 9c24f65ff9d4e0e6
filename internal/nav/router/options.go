package router

import "github.com/shandysiswandi/gonav/internal/nav/entity"

// RouteOption configures a route at registration.
type RouteOption func(*entity.RouteOptions)

// WithName names the route for URL.
func WithName(name string) RouteOption {
	return func(o *entity.RouteOptions) {
		o.Name = name
	}
}

// WithCache overrides Config.CachePages for the route.
func WithCache(enabled bool) RouteOption {
	return func(o *entity.RouteOptions) {
		o.Cache = &enabled
	}
}

// WithMiddleware appends middleware to the route.
func WithMiddleware(mws ...entity.Middleware) RouteOption {
	return func(o *entity.RouteOptions) {
		o.Middleware = append(o.Middleware, mws...)
	}
}

type navigateOptions struct {
	trigger bool
	replace bool
	scroll  bool
	state   any
}

// NavigateOption tunes a single navigation.
type NavigateOption func(*navigateOptions)

// WithTrigger controls whether the route is resolved after the history
// update. It defaults to true.
func WithTrigger(trigger bool) NavigateOption {
	return func(o *navigateOptions) {
		o.trigger = trigger
	}
}

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *navigateOptions) {
		o.replace = true
	}
}

// WithScroll overrides Config.ScrollToTop for this navigation.
func WithScroll(scroll bool) NavigateOption {
	return func(o *navigateOptions) {
		o.scroll = scroll
	}
}

// WithState attaches a value to the history entry and the handler context.
func WithState(state any) NavigateOption {
	return func(o *navigateOptions) {
		o.state = state
	}
}
