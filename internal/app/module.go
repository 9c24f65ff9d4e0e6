package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gonav/internal/nav"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.nav.enabled") {
		if _, err := nav.New(nav.Dependency{
			Config:  a.config,
			Router:  a.router,
			Context: a.ctx,
			ID:      pkguid.NewRandomUUID(),
		}); err != nil {
			slog.Error("failed to init module nav", "error", err)
			os.Exit(1)
		}
	}
}
