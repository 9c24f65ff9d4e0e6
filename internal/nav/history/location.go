package history

import (
	"context"
	"sync"
)

// Location performs full page loads. It stands in for assigning
// window.location when partial loading is not possible.
type Location struct {
	mu       sync.Mutex
	href     string
	loads    int
	onAssign func(ctx context.Context, href string) error
}

// NewLocation creates a Location. onAssign, when set, performs the actual load.
func NewLocation(onAssign func(ctx context.Context, href string) error) *Location {
	return &Location{onAssign: onAssign}
}

// Assign loads href as a full document.
func (l *Location) Assign(ctx context.Context, href string) error {
	l.mu.Lock()
	l.href = href
	l.loads++
	l.mu.Unlock()

	if l.onAssign == nil {
		return nil
	}
	return l.onAssign(ctx, href)
}

// Href returns the last assigned location.
func (l *Location) Href() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.href
}

// Loads returns how many full page loads happened.
func (l *Location) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loads
}
