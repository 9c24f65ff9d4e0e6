package router

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/nav/matcher"
)

// Submit sends a form through the fetcher and renders the response. The CSRF
// token is added to the values when enabled. A GET submission pushes the
// action onto the history. Failures fall back to a full load of the action.
func (r *Router) Submit(ctx context.Context, form entity.Form) error {
	action := form.Action
	if action == "" {
		action = r.history.Current().Path
	}

	local, ok := r.localPath(action)
	if !ok {
		r.supersede()
		return r.fallbackTo(ctx, action, nil)
	}
	path := matcher.Normalize(local)

	if r.fetcher == nil {
		r.supersede()
		return r.fallbackTo(ctx, path, nil)
	}

	values := url.Values{}
	for k, vs := range form.Values {
		values[k] = append([]string(nil), vs...)
	}
	if r.cfg.CSRF && r.csrf != nil {
		r.csrf.AddToValues(values)
	}

	method := strings.ToUpper(strings.TrimSpace(form.Method))
	if method == "" {
		method = http.MethodGet
	}

	route, _ := r.match(path)

	seq, navCtx, cancel := r.begin(ctx)
	defer r.end(seq, cancel)

	raw, err := r.fetcher.Submit(navCtx, entity.Form{Action: path, Method: method, Values: values})
	if err != nil {
		return r.fail(ctx, path, route, err)
	}

	page, err := r.page(raw, path, r.cfg.ScrollToTop)
	if err != nil {
		return r.fail(ctx, path, route, err)
	}

	if r.superseded(seq) {
		return entity.ErrSuperseded
	}
	if err := r.renderer.Render(navCtx, page); err != nil {
		return r.fail(ctx, path, route, err)
	}

	if isGet(method) {
		r.history.Push(path, nil)
	}

	r.settle(ctx, path, route)
	return nil
}
