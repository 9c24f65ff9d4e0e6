package entity

import (
	"context"
	"maps"
)

// Param is a single named value captured from a path.
type Param struct {
	Key   string
	Value string
}

// Params holds captured values in the order they appear in the pattern.
type Params []Param

// ByName returns the value of the first param with the given key.
func (ps Params) ByName(key string) string {
	for _, p := range ps {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// Keys returns the param keys in declaration order.
func (ps Params) Keys() []string {
	keys := make([]string, 0, len(ps))
	for _, p := range ps {
		keys = append(keys, p.Key)
	}
	return keys
}

// Map returns the params as a map. Later duplicates do not override earlier ones.
func (ps Params) Map() map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		if _, ok := m[p.Key]; !ok {
			m[p.Key] = p.Value
		}
	}
	return m
}

// Handler runs when a route settles.
type Handler func(ctx context.Context, c *Context) error

// Middleware wraps a route handler. Calling next continues the chain;
// returning without calling it stops the navigation at that point.
type Middleware func(next Handler) Handler

// RouteOptions tunes a single route.
type RouteOptions struct {
	// Name identifies the route for URL generation.
	Name string
	// Cache enables the page cache for this route. Nil means the router default.
	Cache *bool
	// Middleware runs in order before the handler.
	Middleware []Middleware
}

// Route is a registered pattern. It is immutable once registered.
type Route struct {
	Pattern    string
	ParamNames []string
	Options    RouteOptions
	Handler    Handler
}

// CacheEnabled reports whether fetched pages for this route may be cached.
func (r *Route) CacheEnabled(fallback bool) bool {
	if r == nil || r.Options.Cache == nil {
		return fallback
	}
	return *r.Options.Cache
}

// Context is what a route handler receives.
type Context struct {
	Path   string
	Params Params
	Query  map[string]string
	State  any
	Route  *Route
	// Page is the rendered fragment. It is nil when the router runs without PJAX.
	Page *Page
}

// Param returns the value of a named path param.
func (c *Context) Param(key string) string {
	return c.Params.ByName(key)
}

// QueryMap returns a copy of the parsed query values.
func (c *Context) QueryMap() map[string]string {
	return maps.Clone(c.Query)
}
