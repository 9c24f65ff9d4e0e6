package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/shandysiswandi/gonav/internal/nav/fragment"
)

// LoadDir walks root on fs and stores every *.html file. index.html maps to
// its directory and a/b.html maps to /a/b. Title and body are taken from
// the document. It returns the number of pages loaded.
func LoadDir(ctx context.Context, fs afero.Fs, store *InMemoryStore, root string) (int, error) {
	loaded := 0

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}

		doc, err := fragment.Extract(string(raw), "body")
		if err != nil {
			return fmt.Errorf("parse %s: %w", rel, err)
		}

		page := Page{Path: PathFor(rel), Title: doc.Title, Body: doc.Content}
		if err := store.Put(ctx, page); err != nil {
			return err
		}

		slog.DebugContext(ctx, "site page loaded", "file", rel, "path", page.Path)
		loaded++

		return nil
	})
	if err != nil {
		return loaded, err
	}

	return loaded, nil
}

// PathFor maps a file path relative to the site root to its URL path.
func PathFor(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	if rel == "index" {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/index")

	return "/" + strings.TrimPrefix(rel, "/")
}
