package history

import (
	"context"
	"errors"
	"testing"
)

func TestStackPushBackForward(t *testing.T) {
	s := NewStack("/")
	s.Push("/a", nil)
	s.Push("/b", "state-b")

	if got := s.Current(); got.Path != "/b" || got.State != "state-b" {
		t.Fatalf("unexpected current %+v", got)
	}

	e, ok := s.Back()
	if !ok || e.Path != "/a" {
		t.Fatalf("expected back to /a, got %+v %v", e, ok)
	}
	e, ok = s.Back()
	if !ok || e.Path != "/" {
		t.Fatalf("expected back to /, got %+v %v", e, ok)
	}
	if _, ok := s.Back(); ok {
		t.Fatalf("expected no entry before start")
	}

	e, ok = s.Forward()
	if !ok || e.Path != "/a" {
		t.Fatalf("expected forward to /a, got %+v %v", e, ok)
	}
}

func TestStackPushDropsForwardEntries(t *testing.T) {
	s := NewStack("/")
	s.Push("/a", nil)
	s.Push("/b", nil)
	s.Back()
	s.Push("/c", nil)

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	if _, ok := s.Forward(); ok {
		t.Fatalf("expected forward entries dropped")
	}
}

func TestStackReplace(t *testing.T) {
	s := NewStack("/")
	s.Push("/a", nil)
	s.Replace("/a2", 1)

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if got := s.Current(); got.Path != "/a2" || got.State != 1 {
		t.Fatalf("unexpected current %+v", got)
	}
}

func TestLocationAssign(t *testing.T) {
	boom := errors.New("boom")
	var seen string
	loc := NewLocation(func(ctx context.Context, href string) error {
		seen = href
		return boom
	})

	if err := loc.Assign(context.Background(), "/post/7"); !errors.Is(err, boom) {
		t.Fatalf("expected onAssign error, got %v", err)
	}
	if seen != "/post/7" || loc.Href() != "/post/7" || loc.Loads() != 1 {
		t.Fatalf("unexpected location state %q %q %d", seen, loc.Href(), loc.Loads())
	}

	if err := NewLocation(nil).Assign(context.Background(), "/"); err != nil {
		t.Fatalf("expected nil without callback, got %v", err)
	}
}
