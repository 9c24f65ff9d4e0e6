package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgmetrics"
)

const (
	HeaderPJAX          = "X-PJAX"
	HeaderPJAXContainer = "X-PJAX-Container"
	HeaderRequestedWith = "X-Requested-With"

	// DefaultMaxBody caps the bytes read from one response.
	DefaultMaxBody int64 = 8 << 20

	tracerName = "github.com/shandysiswandi/gonav/internal/nav/fetch"
)

// ErrBodyTooLarge is wrapped in a NetworkError when a response exceeds MaxBody.
var ErrBodyTooLarge = errors.New("response body too large")

// HeaderInjector adds request headers, such as a CSRF token.
type HeaderInjector interface {
	AddToHeaders(h http.Header)
}

// Recorder observes fetch durations.
type Recorder interface {
	ObserveFetch(outcome string, d time.Duration)
}

// Config controls an HTTPFetcher.
type Config struct {
	// BaseURL resolves relative paths. Empty means paths must be absolute.
	BaseURL string
	// Container is sent as X-PJAX-Container.
	Container string
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
	// MaxBody caps the response size. Zero means DefaultMaxBody.
	MaxBody int64
}

// Option customizes an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithHeaders adds an injector run on every request.
func WithHeaders(h HeaderInjector) Option {
	return func(f *HTTPFetcher) {
		f.headers = h
	}
}

// WithRecorder records fetch durations.
func WithRecorder(r Recorder) Option {
	return func(f *HTTPFetcher) {
		f.recorder = r
	}
}

// HTTPFetcher fetches pages with net/http.
type HTTPFetcher struct {
	cfg      Config
	base     *url.URL
	client   *http.Client
	headers  HeaderInjector
	recorder Recorder
	tracer   trace.Tracer
}

// New creates an HTTPFetcher.
func New(cfg Config, opts ...Option) (*HTTPFetcher, error) {
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}

	f := &HTTPFetcher{
		cfg:    cfg,
		client: http.DefaultClient,
		tracer: otel.Tracer(tracerName),
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("fetch: parse base url: %w", err)
		}
		if base.Scheme == "" || base.Host == "" {
			return nil, fmt.Errorf("fetch: base url %q must be absolute", cfg.BaseURL)
		}
		f.base = base
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Container returns the configured container selector.
func (f *HTTPFetcher) Container() string {
	return f.cfg.Container
}

// Base returns the parsed base URL, or nil.
func (f *HTTPFetcher) Base() *url.URL {
	return f.base
}

// Fetch requests the partial page at path.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (string, error) {
	return f.do(ctx, request{method: http.MethodGet, path: path, pjax: true})
}

// Document requests the full page at path.
func (f *HTTPFetcher) Document(ctx context.Context, path string) (string, error) {
	return f.do(ctx, request{method: http.MethodGet, path: path})
}

// Submit sends a form. GET forms carry their values in the query string,
// every other method sends them url-encoded in the body.
func (f *HTTPFetcher) Submit(ctx context.Context, form entity.Form) (string, error) {
	method := strings.ToUpper(strings.TrimSpace(form.Method))
	if method == "" {
		method = http.MethodGet
	}

	req := request{method: method, path: form.Action, pjax: true}
	if method == http.MethodGet {
		req.query = form.Values
	} else {
		req.body = form.Values.Encode()
		req.contentType = "application/x-www-form-urlencoded"
	}

	return f.do(ctx, req)
}

type request struct {
	method      string
	path        string
	pjax        bool
	query       url.Values
	body        string
	contentType string
}

func (f *HTTPFetcher) do(ctx context.Context, r request) (string, error) {
	start := time.Now()

	target, err := f.resolve(r.path, r.query)
	if err != nil {
		return "", &entity.NetworkError{URL: r.path, Err: err}
	}

	ctx, span := f.tracer.Start(ctx, "fetch "+r.method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.method),
			attribute.String("http.url", target),
			attribute.Bool("pjax", r.pjax),
		),
	)
	defer span.End()

	reqCtx, cancel := ctx, context.CancelFunc(func() {})
	if f.cfg.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
	}
	defer cancel()

	body, status, err := f.roundTrip(reqCtx, target, r)
	if err == nil {
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status < 200 || status > 299 {
			err = &entity.NetworkError{URL: target, Status: status}
		}
	} else {
		err = f.classify(ctx, reqCtx, target, err)
	}

	f.observe(err, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetStatus(codes.Ok, "")
	return body, nil
}

func (f *HTTPFetcher) roundTrip(ctx context.Context, target string, r request) (string, int, error) {
	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return "", 0, err
	}

	req.Header.Set("Accept", "text/html, */*; q=0.01")
	req.Header.Set(HeaderRequestedWith, "XMLHttpRequest")
	if r.pjax {
		req.Header.Set(HeaderPJAX, "true")
		if f.cfg.Container != "" {
			req.Header.Set(HeaderPJAXContainer, f.cfg.Container)
		}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if f.headers != nil {
		f.headers.AddToHeaders(req.Header)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBody+1))
	if err != nil {
		return "", resp.StatusCode, err
	}
	if int64(len(data)) > f.cfg.MaxBody {
		return "", resp.StatusCode, ErrBodyTooLarge
	}

	return string(data), resp.StatusCode, nil
}

// classify maps a transport error. A canceled parent context is returned
// untouched, an expired request deadline becomes a TimeoutError and anything
// else is a NetworkError.
func (f *HTTPFetcher) classify(parent, reqCtx context.Context, target string, err error) error {
	if perr := parent.Err(); perr != nil {
		return fmt.Errorf("fetch %s: %w", target, perr)
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return &entity.TimeoutError{URL: target, Timeout: f.cfg.Timeout}
	}

	return &entity.NetworkError{URL: target, Err: err}
}

func (f *HTTPFetcher) observe(err error, d time.Duration) {
	if f.recorder == nil {
		return
	}

	outcome := pkgmetrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		outcome = pkgmetrics.OutcomeCanceled
	default:
		outcome = pkgmetrics.OutcomeError
	}

	f.recorder.ObserveFetch(outcome, d)
}

func (f *HTTPFetcher) resolve(path string, query url.Values) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", err
	}

	if !u.IsAbs() {
		if f.base == nil {
			return "", fmt.Errorf("relative path %q without base url", path)
		}
		u = f.base.ResolveReference(u)
	}

	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
