package fragment

import (
	"context"
	"sync"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
)

// Document is an in-memory render target. It keeps the page most recently
// swapped in and how many renders happened.
type Document struct {
	mu      sync.RWMutex
	page    entity.Page
	renders int
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// Render replaces the current page.
func (d *Document) Render(ctx context.Context, page entity.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.page = page
	d.renders++

	return nil
}

// Page returns the current page.
func (d *Document) Page() entity.Page {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.page
}

// Renders returns how many times Render succeeded.
func (d *Document) Renders() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.renders
}
