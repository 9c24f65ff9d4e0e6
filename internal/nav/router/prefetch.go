package router

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shandysiswandi/gonav/internal/nav/matcher"
)

// Prefetch loads paths into the page cache ahead of navigation. Paths that
// are cached already, match no route, or belong to a route with caching off
// are skipped. Concurrent requests for one path share a single fetch.
// Failures do not stop the other paths and are returned joined.
func (r *Router) Prefetch(ctx context.Context, paths ...string) error {
	if !r.cfg.PJAX || r.fetcher == nil {
		return nil
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(r.cfg.PrefetchWorkers)

	for _, p := range paths {
		path := matcher.Normalize(p)
		g.Go(func() error {
			if err := r.prefetch(ctx, path); err != nil {
				slog.WarnContext(ctx, "prefetch failed", "path", path, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// PrefetchAsync runs Prefetch in the background.
func (r *Router) PrefetchAsync(ctx context.Context, paths ...string) {
	paths = append([]string(nil), paths...)
	r.runner.GoNamed(ctx, "router.prefetch", func(ctx context.Context) error {
		return r.Prefetch(ctx, paths...)
	})
}

func (r *Router) prefetch(ctx context.Context, path string) error {
	route, _ := r.match(path)
	if route == nil || !route.CacheEnabled(r.cfg.CachePages) {
		return nil
	}
	if r.cache.Has(path) {
		return nil
	}

	_, err, _ := r.group.Do(path, func() (any, error) {
		if r.cache.Has(path) {
			return nil, nil
		}

		raw, err := r.fetcher.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		r.cache.Put(path, raw)

		return nil, nil
	})

	return err
}
