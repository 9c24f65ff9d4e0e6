package nav

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/shandysiswandi/gonav/internal/nav/inbound"
	"github.com/shandysiswandi/gonav/internal/nav/security"
	"github.com/shandysiswandi/gonav/internal/nav/site"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

type Dependency struct {
	Config  pkgconfig.Config
	Router  *pkgrouter.Router
	Context context.Context
	ID      pkguid.StringID
	FS      afero.Fs
}

// New loads the site pages and serves them on the router. It returns the
// store so callers can add pages programmatically.
func New(dep Dependency) (*site.InMemoryStore, error) {
	if dep.ID == nil {
		dep.ID = pkguid.NewRandomUUID()
	}
	if dep.FS == nil {
		dep.FS = afero.NewOsFs()
	}
	if dep.Context == nil {
		dep.Context = context.Background()
	}

	root := dep.Config.GetString("site.root")
	if root == "" {
		root = "./site"
	}

	container := dep.Config.GetString("site.container")
	if container == "" {
		container = DefaultContainer
	}

	store := site.NewInMemoryStore()
	n, err := site.LoadDir(dep.Context, dep.FS, store, root)
	if err != nil {
		return nil, err
	}

	sec := security.NewProvider(security.DefaultConfig())
	sec.SetToken(dep.ID.Generate())

	inbound.RegisterHTTPEndpoint(dep.Router, store, sec, container)

	slog.InfoContext(dep.Context, "site loaded", "root", root, "pages", n, "container", container)

	return store, nil
}
