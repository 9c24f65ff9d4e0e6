package router

import (
	"context"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
)

// BeforeContext is passed to before hooks. Calling Cancel stops the
// navigation and leaves the router state as it was.
type BeforeContext struct {
	Path     string
	Route    *entity.Route
	From     *entity.Route
	FromPath string

	canceled bool
}

func (b *BeforeContext) Cancel() {
	b.canceled = true
}

func (b *BeforeContext) Canceled() bool {
	return b.canceled
}

// AfterContext is passed to after hooks once a navigation settled. From is
// the route that was active before it.
type AfterContext struct {
	Path     string
	Route    *entity.Route
	From     *entity.Route
	FromPath string
}

// ErrorContext is passed to error hooks. Setting Handled stops the remaining
// hooks and skips the fallback.
type ErrorContext struct {
	Err     error
	Path    string
	Route   *entity.Route
	Handled bool
}

type (
	BeforeHook func(ctx context.Context, bc *BeforeContext)
	AfterHook  func(ctx context.Context, ac AfterContext)
	ErrorHook  func(ctx context.Context, ec *ErrorContext)
)
