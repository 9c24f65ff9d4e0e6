package security

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Config names where the CSRF token travels.
type Config struct {
	// Header carries the token on fetches.
	Header string
	// Param carries the token in form bodies.
	Param string
	// MetaName is the name of the <meta> tag holding the token.
	MetaName string
}

// DefaultConfig returns the conventional X-CSRF-Token / _csrf / csrf-token names.
func DefaultConfig() Config {
	return Config{
		Header:   "X-CSRF-Token",
		Param:    "_csrf",
		MetaName: "csrf-token",
	}
}

// Provider holds the CSRF token and CSP nonce of the current document.
// The zero token means no token is known and nothing is injected.
type Provider struct {
	mu    sync.RWMutex
	cfg   Config
	token string
	nonce string
}

// NewProvider creates a Provider. Empty config fields take their defaults.
func NewProvider(cfg Config) *Provider {
	def := DefaultConfig()
	if cfg.Header == "" {
		cfg.Header = def.Header
	}
	if cfg.Param == "" {
		cfg.Param = def.Param
	}
	if cfg.MetaName == "" {
		cfg.MetaName = def.MetaName
	}

	return &Provider{cfg: cfg}
}

// Config returns the token naming.
func (p *Provider) Config() Config {
	return p.cfg
}

// Detect reads the CSRF meta tag and the first script nonce from an HTML
// document. Values that are already set are left alone.
func (p *Provider) Detect(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return err
	}

	token, _ := doc.Find(`meta[name="` + p.cfg.MetaName + `"]`).First().Attr("content")
	nonce, _ := doc.Find("script[nonce]").First().Attr("nonce")

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token == "" {
		p.token = strings.TrimSpace(token)
	}
	if p.nonce == "" {
		p.nonce = strings.TrimSpace(nonce)
	}

	return nil
}

// Token returns the CSRF token, or "" when none is known.
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.token
}

// SetToken replaces the CSRF token.
func (p *Provider) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = token
}

// Nonce returns the CSP nonce, or "".
func (p *Provider) Nonce() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.nonce
}

// SetNonce replaces the CSP nonce.
func (p *Provider) SetNonce(nonce string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nonce = nonce
}

// AddToHeaders sets the CSRF header when a token is known.
func (p *Provider) AddToHeaders(h http.Header) {
	if token := p.Token(); token != "" {
		h.Set(p.cfg.Header, token)
	}
}

// AddToValues sets the CSRF form field when a token is known.
func (p *Provider) AddToValues(v url.Values) {
	if token := p.Token(); token != "" {
		v.Set(p.cfg.Param, token)
	}
}

// MetaTag renders the <meta> tag carrying the token.
func (p *Provider) MetaTag() string {
	return `<meta name="` + escapeAttr(p.cfg.MetaName) + `" content="` + escapeAttr(p.Token()) + `">`
}

// Verify checks the token sent with r, from the header first and then the
// form field. It fails when no token is configured.
func (p *Provider) Verify(r *http.Request) bool {
	want := p.Token()
	if want == "" {
		return false
	}

	got := r.Header.Get(p.cfg.Header)
	if got == "" {
		got = r.FormValue(p.cfg.Param)
	}

	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func escapeAttr(s string) string {
	return strings.NewReplacer(`&`, "&amp;", `"`, "&#34;", `<`, "&lt;", `>`, "&gt;").Replace(s)
}
