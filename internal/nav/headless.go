package nav

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/nav/event"
	"github.com/shandysiswandi/gonav/internal/nav/fetch"
	"github.com/shandysiswandi/gonav/internal/nav/fragment"
	"github.com/shandysiswandi/gonav/internal/nav/history"
	"github.com/shandysiswandi/gonav/internal/nav/router"
	"github.com/shandysiswandi/gonav/internal/nav/security"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

type HeadlessDependency struct {
	Config   ClientConfig
	Registry prometheus.Registerer
	Runner   *pkgroutine.Manager
	ID       pkguid.NumberID
}

// Headless drives a Router against a live fragment server without a
// browser. Full page loads fetch the whole document into the same
// Document.
type Headless struct {
	Router   *router.Router
	Document *fragment.Document
	History  *history.Stack
	Location *history.Location
	Security *security.Provider
	Fetcher  *fetch.HTTPFetcher
	Metrics  *pkgmetrics.Navigation

	dispatcher *event.Dispatcher
}

func NewHeadless(dep HeadlessDependency) (*Headless, error) {
	cfg := dep.Config
	if cfg.Router.BaseURL == "" {
		return nil, errors.New("nav: router.base_url is required")
	}
	if dep.Runner == nil {
		dep.Runner = pkgroutine.NewManager(cfg.Router.PrefetchWorkers)
	}

	h := &Headless{
		Document: fragment.NewDocument(),
		History:  history.NewStack("/"),
		Security: security.NewProvider(security.DefaultConfig()),
		Metrics:  pkgmetrics.NewNavigation(dep.Registry, pkgmetrics.DefaultNamespace),
	}

	opts := []fetch.Option{fetch.WithRecorder(h.Metrics)}
	if cfg.Router.CSRF {
		opts = append(opts, fetch.WithHeaders(h.Security))
	}

	fetcher, err := fetch.New(fetch.Config{
		BaseURL:   cfg.Router.BaseURL,
		Container: cfg.Router.Container,
		Timeout:   cfg.Timeout,
	}, opts...)
	if err != nil {
		return nil, err
	}
	h.Fetcher = fetcher
	h.Location = history.NewLocation(h.loadDocument)

	bus := event.NewBus(256)
	h.dispatcher = event.NewDispatcher(bus, event.DispatcherConfig{Workers: 1})
	for _, t := range []entity.EventType{entity.EventReady, entity.EventBeforeLoad, entity.EventComplete, entity.EventError} {
		h.dispatcher.On(t, event.LogListener)
	}
	h.dispatcher.Start()

	r, err := router.New(router.Dependency{
		Config:   cfg.Router,
		Fetcher:  fetcher,
		Renderer: h.Document,
		History:  h.History,
		Fallback: h.Location,
		CSRF:     h.Security,
		Events:   bus,
		Runner:   dep.Runner,
		Metrics:  h.Metrics,
		ID:       dep.ID,
	})
	if err != nil {
		_ = h.dispatcher.Stop(context.Background())
		return nil, err
	}
	h.Router = r

	return h, nil
}

// Boot reads the CSRF token and nonce from the site root document.
func (h *Headless) Boot(ctx context.Context) error {
	raw, err := h.Fetcher.Document(ctx, "/")
	if err != nil {
		return err
	}

	return h.Security.Detect(raw)
}

// Close drains pending events.
func (h *Headless) Close(ctx context.Context) error {
	return h.dispatcher.Stop(ctx)
}

func (h *Headless) loadDocument(ctx context.Context, href string) error {
	raw, err := h.Fetcher.Document(ctx, href)
	if err != nil {
		slog.WarnContext(ctx, "full page load failed", "href", href, "error", err)
		return err
	}

	page, err := fragment.Extract(raw, h.Fetcher.Container())
	if err != nil {
		return err
	}
	page.Path = href

	return h.Document.Render(ctx, page)
}
