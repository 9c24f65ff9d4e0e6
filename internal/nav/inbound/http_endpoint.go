package inbound

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gonav/internal/nav/site"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgerror"
)

const headerPJAX = "X-PJAX"

var layout = template.Must(template.New("layout").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{.CSRFMeta}}
</head>
<body>
{{.Open}}{{.Body}}{{.Close}}
</body>
</html>
`))

var fragmentLayout = template.Must(template.New("fragment").Parse(`<title>{{.Title}}</title>
{{.Open}}{{.Body}}{{.Close}}`))

type view struct {
	Title    string
	CSRFMeta template.HTML
	Open     template.HTML
	Body     template.HTML
	Close    template.HTML
}

// HTTPEndpoint renders pages as full documents, or as fragments for PJAX
// requests.
type HTTPEndpoint struct {
	store    pageStore
	csrf     csrf
	openTag  string
	closeTag string
}

func NewHTTPEndpoint(store pageStore, csrf csrf, container string) *HTTPEndpoint {
	openTag, closeTag := containerTags(container)
	return &HTTPEndpoint{store: store, csrf: csrf, openTag: openTag, closeTag: closeTag}
}

func (h *HTTPEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			h.writeError(w, r, pkgerror.NewInvalidFormat())
			return
		}
		if h.csrf == nil || !h.csrf.Verify(r) {
			h.writeError(w, r, pkgerror.NewForbidden("invalid csrf token"))
			return
		}
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	page, err := h.store.Get(r.Context(), r.URL.Path)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := h.render(page, isPJAX(r))
	if err != nil {
		h.writeError(w, r, pkgerror.NewServer(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", headerPJAX)
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (h *HTTPEndpoint) render(page site.Page, pjax bool) ([]byte, error) {
	v := view{
		Title: page.Title,
		Open:  template.HTML(h.openTag),  //nolint:gosec // built from configuration
		Body:  template.HTML(page.Body),  //nolint:gosec // site content is trusted
		Close: template.HTML(h.closeTag), //nolint:gosec // built from configuration
	}

	tmpl := fragmentLayout
	if !pjax {
		tmpl = layout
		if h.csrf != nil {
			v.CSRFMeta = template.HTML(h.csrf.MetaTag()) //nolint:gosec // attributes are escaped
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (h *HTTPEndpoint) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var gerr *pkgerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(r.Context(), "failed to serve page", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if gerr.StatusCode() >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "failed to serve page", "path", r.URL.Path, "error", err)
	}
	http.Error(w, gerr.Msg(), gerr.StatusCode())
}

func isPJAX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(headerPJAX), "true")
}

// containerTags turns a simple selector ("#id", ".class" or "tag") into the
// element that wraps page bodies.
func containerTags(selector string) (string, string) {
	selector = strings.TrimSpace(selector)
	escape := template.HTMLEscapeString

	switch {
	case strings.HasPrefix(selector, "#") && len(selector) > 1:
		return `<div id="` + escape(selector[1:]) + `">`, "</div>"
	case strings.HasPrefix(selector, ".") && len(selector) > 1:
		return `<div class="` + escape(selector[1:]) + `">`, "</div>"
	case selector != "" && isTagName(selector):
		return "<" + selector + ">", "</" + selector + ">"
	default:
		return `<div id="main">`, "</div>"
	}
}

func isTagName(s string) bool {
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
