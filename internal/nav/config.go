package nav

import (
	"time"

	"github.com/shandysiswandi/gonav/internal/nav/router"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgconfig"
)

const (
	DefaultContainer = "#main"
	DefaultTimeout   = 5 * time.Second
)

// ClientConfig is the router configuration plus the fetch settings.
//
// Node pins the snowflake node used for event IDs. A negative Node picks
// one at random.
type ClientConfig struct {
	Router  router.Config
	Timeout time.Duration
	Node    int64
}

// ClientConfigFrom reads the router.* keys. Unset keys keep the router
// defaults.
func ClientConfigFrom(cfg pkgconfig.Config) ClientConfig {
	out := ClientConfig{Router: router.DefaultConfig(), Timeout: DefaultTimeout, Node: -1}
	rc := &out.Router

	if cfg.IsSet("router.base_url") {
		rc.BaseURL = cfg.GetString("router.base_url")
	}
	if cfg.IsSet("router.container") {
		rc.Container = cfg.GetString("router.container")
	}
	if cfg.IsSet("router.pjax") {
		rc.PJAX = cfg.GetBool("router.pjax")
	}
	if cfg.IsSet("router.cache_pages") {
		rc.CachePages = cfg.GetBool("router.cache_pages")
	}
	if cfg.IsSet("router.max_cache") {
		rc.MaxCache = int(cfg.GetInt("router.max_cache"))
	}
	if cfg.IsSet("router.scroll_to_top") {
		rc.ScrollToTop = cfg.GetBool("router.scroll_to_top")
	}
	if cfg.IsSet("router.update_title") {
		rc.UpdateTitle = cfg.GetBool("router.update_title")
	}
	if cfg.IsSet("router.csrf") {
		rc.CSRF = cfg.GetBool("router.csrf")
	}
	if cfg.IsSet("router.prefetch_workers") {
		rc.PrefetchWorkers = int(cfg.GetInt("router.prefetch_workers"))
	}
	if cfg.IsSet("router.timeout") {
		out.Timeout = cfg.GetDuration("router.timeout")
	}
	if cfg.IsSet("router.node") {
		out.Node = cfg.GetInt("router.node")
	}

	return out
}
