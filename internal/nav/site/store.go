package site

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shandysiswandi/gonav/internal/nav/matcher"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgerror"
)

// ErrEmptyPath is wrapped by Put when a page has no path.
var ErrEmptyPath = errors.New("page path is required")

// Page is a stored document.
type Page struct {
	Path  string
	Title string
	Body  string
}

// InMemoryStore keeps pages keyed by normalized path.
type InMemoryStore struct {
	mu    sync.RWMutex
	pages map[string]Page
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		pages: make(map[string]Page),
	}
}

// Put stores page, replacing any page at the same path.
func (s *InMemoryStore) Put(ctx context.Context, page Page) error {
	if page.Path == "" {
		return pkgerror.NewInvalidInput(ErrEmptyPath)
	}
	page.Path = matcher.Normalize(page.Path)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages[page.Path] = page

	return nil
}

// Get returns the page at path. The query string is ignored.
func (s *InMemoryStore) Get(ctx context.Context, path string) (Page, error) {
	p, _ := matcher.SplitQuery(matcher.Normalize(path))

	s.mu.RLock()
	page, ok := s.pages[p]
	s.mu.RUnlock()
	if !ok {
		return Page{}, pkgerror.NewNotFound("page not found")
	}

	return page, nil
}

// Paths lists stored paths in lexical order.
func (s *InMemoryStore) Paths(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.pages))
	for p := range s.pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}
