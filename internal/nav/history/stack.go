package history

import "sync"

// Entry is a single history record.
type Entry struct {
	Path  string
	State any
}

// Stack is an in-memory session history. Pushing while in the middle of the
// stack drops the forward entries.
type Stack struct {
	mu      sync.Mutex
	entries []Entry
	index   int
}

// NewStack creates a Stack positioned at initial.
func NewStack(initial string) *Stack {
	return &Stack{entries: []Entry{{Path: initial}}}
}

// Push records a new entry after the current one.
func (s *Stack) Push(path string, state any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries[:s.index+1], Entry{Path: path, State: state})
	s.index = len(s.entries) - 1
}

// Replace overwrites the current entry.
func (s *Stack) Replace(path string, state any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.index] = Entry{Path: path, State: state}
}

// Back moves one entry back. It returns false at the start of history.
func (s *Stack) Back() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == 0 {
		return Entry{}, false
	}
	s.index--

	return s.entries[s.index], true
}

// Forward moves one entry forward. It returns false at the end of history.
func (s *Stack) Forward() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index >= len(s.entries)-1 {
		return Entry{}, false
	}
	s.index++

	return s.entries[s.index], true
}

// Current returns the active entry.
func (s *Stack) Current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries[s.index]
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
