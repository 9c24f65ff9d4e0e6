package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gonav/internal/nav/site"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgrouter"
)

type pageStore interface {
	Get(ctx context.Context, path string) (site.Page, error)
}

type csrf interface {
	Verify(r *http.Request) bool
	MetaTag() string
}

// RegisterHTTPEndpoint serves stored pages for every path no other route
// claims.
func RegisterHTTPEndpoint(r *pkgrouter.Router, store pageStore, csrf csrf, container string) {
	r.Fallback(NewHTTPEndpoint(store, csrf, container))
}
