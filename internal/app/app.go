package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shandysiswandi/gonav/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gonav/internal/pkg/pkglog"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

type App struct {
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once

	// configuration
	config     pkgconfig.Config
	configPath string

	// libraries
	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager
	registry  *prometheus.Registry

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

// New builds the server application. An empty configPath picks the default
// location.
func New(configPath string) *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:        ctx,
		cancel:     cancel,
		configPath: configPath,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
