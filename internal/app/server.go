package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
)

const closerHTTPServer = "HTTP Server"

// Start serves HTTP in the background. The returned channel fires once, on a
// termination signal or when the listener fails.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})
	stop := func(reason string) {
		a.stopOnce.Do(func() {
			if a.cancel != nil {
				a.cancel()
			}
			slog.Info("application is shutting down", "because", reason)
			close(terminateChan)
		})
	}

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			stop("listener failed")
		}
	}()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigint)

		select {
		case sig := <-sigint:
			stop(sig.String())
		case <-terminateChan:
		}
	}()

	return terminateChan
}

// Stop shuts the HTTP server down, waits for background work and then runs
// the remaining closers in name order.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", closerHTTPServer, "error", err)
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish", "running", a.goroutine.Running())
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}
	slog.InfoContext(ctx, "all goroutines have finished successfully")

	names := make([]string, 0, len(a.closerFn))
	for name := range a.closerFn {
		if name != closerHTTPServer {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		if err := a.closerFn[name](ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}
