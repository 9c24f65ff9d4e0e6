package router

import (
	"context"
	"net/url"
	"time"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/nav/history"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

// Config holds the router settings.
type Config struct {
	// BaseURL is the origin the router serves. Absolute URLs on another
	// origin always go to the Fallback.
	BaseURL string
	// Container selects the element whose inner HTML is swapped.
	Container string
	// PJAX enables fetching and rendering. When false only handlers run.
	PJAX bool
	// CachePages is the cache default for routes that do not set one.
	CachePages bool
	// MaxCache bounds the page cache.
	MaxCache    int
	ScrollToTop bool
	UpdateTitle bool
	// CSRF adds the token to submitted forms.
	CSRF bool
	// PrefetchWorkers bounds concurrent prefetches.
	PrefetchWorkers int
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Container:       "#main",
		PJAX:            true,
		CachePages:      true,
		MaxCache:        20,
		ScrollToTop:     true,
		UpdateTitle:     true,
		CSRF:            true,
		PrefetchWorkers: 4,
	}
}

// Fetcher loads page HTML.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
	Submit(ctx context.Context, form entity.Form) (string, error)
}

// Renderer swaps a page into the container.
type Renderer interface {
	Render(ctx context.Context, page entity.Page) error
}

// History is the session history the router pushes to.
type History interface {
	Push(path string, state any)
	Replace(path string, state any)
	Back() (history.Entry, bool)
	Forward() (history.Entry, bool)
	Current() history.Entry
}

// Fallback performs a full page load.
type Fallback interface {
	Assign(ctx context.Context, href string) error
}

// CSRF supplies the token and script nonce of the current document.
type CSRF interface {
	Token() string
	Nonce() string
	AddToValues(v url.Values)
}

// Publisher receives lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event entity.Event) error
}

// Runner runs background work.
type Runner interface {
	GoNamed(ctx context.Context, name string, f func(ctx context.Context) error)
}

// Metrics records navigation outcomes.
type Metrics interface {
	NavigationDone(outcome string)
	CacheLookup(hit bool)
}

// Dependency is everything the router needs. Only Fetcher is required, and
// only when PJAX is on.
type Dependency struct {
	Config   Config
	Fetcher  Fetcher
	Renderer Renderer
	History  History
	Fallback Fallback
	CSRF     CSRF
	Events   Publisher
	Runner   Runner
	Metrics  Metrics
	ID       pkguid.NumberID
	Clock    func() time.Time
}

type nopMetrics struct{}

func (nopMetrics) NavigationDone(string) {}
func (nopMetrics) CacheLookup(bool) {}
