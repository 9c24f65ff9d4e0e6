package pagecache

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestCacheEvictsFirstInsertedBeyondCapacity(t *testing.T) {
	const capacity = 5
	c := New(capacity)

	for i := 0; i <= capacity; i++ {
		c.Put(fmt.Sprintf("/p/%d", i), fmt.Sprintf("page %d", i))
	}

	if c.Len() != capacity {
		t.Fatalf("expected %d entries, got %d", capacity, c.Len())
	}
	if c.Has("/p/0") {
		t.Fatalf("expected first-inserted key to be evicted")
	}
	for i := 1; i <= capacity; i++ {
		key := fmt.Sprintf("/p/%d", i)
		if got, ok := c.Get(key); !ok || got != fmt.Sprintf("page %d", i) {
			t.Fatalf("expected %s to be present, got %q (ok=%v)", key, got, ok)
		}
	}
}

func TestCacheReputAtCapacityEvictsOldest(t *testing.T) {
	c := New(2)

	c.Put("A", "a1")
	c.Put("B", "b1")
	c.Put("A", "a2")
	c.Put("C", "c1")

	if c.Has("B") {
		t.Fatalf("expected B to be evicted")
	}
	if got, ok := c.Get("A"); !ok || got != "a2" {
		t.Fatalf("expected A=a2, got %q (ok=%v)", got, ok)
	}
	if got, ok := c.Get("C"); !ok || got != "c1" {
		t.Fatalf("expected C=c1, got %q (ok=%v)", got, ok)
	}
	if got := c.Keys(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestCacheReputBelowCapacityKeepsPosition(t *testing.T) {
	c := New(3)

	c.Put("A", "a1")
	c.Put("B", "b1")
	c.Put("A", "a2")

	if got := c.Keys(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("re-put must not refresh order, got %v", got)
	}

	c.Put("C", "c1")
	c.Put("D", "d1")

	if c.Has("A") {
		t.Fatalf("expected A (oldest insertion) to be evicted")
	}
	if got := c.Keys(); !reflect.DeepEqual(got, []string{"B", "C", "D"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestCacheReadsDoNotAffectEviction(t *testing.T) {
	c := New(2)
	c.Put("A", "a")
	c.Put("B", "b")

	for i := 0; i < 10; i++ {
		c.Get("A")
	}
	c.Put("C", "c")

	if c.Has("A") {
		t.Fatalf("expected A evicted regardless of reads")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New(3)
	c.Put("A", "a")
	c.Put("B", "b")
	c.Put("C", "c")

	c.Invalidate("B")
	c.Invalidate("missing")

	if c.Has("B") || c.Len() != 2 {
		t.Fatalf("expected B removed, len=%d", c.Len())
	}
	if got := c.Keys(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("unexpected order %v", got)
	}

	c.Put("D", "d")
	if !c.Has("A") {
		t.Fatalf("expected room after invalidate, A should survive")
	}

	c.InvalidateAll()
	if c.Len() != 0 || len(c.Keys()) != 0 {
		t.Fatalf("expected empty cache")
	}

	c.Put("E", "e")
	if got, ok := c.Get("E"); !ok || got != "e" {
		t.Fatalf("expected cache usable after InvalidateAll")
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	if got := New(0).Capacity(); got != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, got)
	}
	if got := New(-3).Capacity(); got != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, got)
	}
}

func TestCacheNeverExceedsCapacityConcurrently(t *testing.T) {
	c := New(8)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Put(fmt.Sprintf("/w%d/%d", w, i%20), "x")
				if c.Len() > 8 {
					t.Errorf("cache exceeded capacity: %d", c.Len())
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if c.Len() > 8 {
		t.Fatalf("cache exceeded capacity: %d", c.Len())
	}
}
