package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[float64](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("1|20/08/2025|09:00|12:00", 150000)
	got, ok := c.Get("1|20/08/2025|09:00|12:00")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got != 150000 {
		t.Fatalf("got %v, want 150000", got)
	}

	c.Set("1|20/08/2025|09:00|12:00", 200000)
	if got, _ := c.Get("1|20/08/2025|09:00|12:00"); got != 200000 {
		t.Fatalf("overwrite not visible, got %v", got)
	}
	if c.Size() != 1 {
		t.Fatalf("overwrite grew the cache to %d entries", c.Size())
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache[float64](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry was evicted")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	c := NewLRUCache[float64](10, 10*time.Millisecond)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), float64(i))
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k0"); ok {
		t.Fatal("expired entry returned from Get")
	}
	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("CleanExpired removed %d, want 2 (k0 already dropped on access)", removed)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d after cleanup, want 0", c.Size())
	}
}

func TestLRUCacheDelete(t *testing.T) {
	c := NewLRUCache[float64](4, time.Minute)
	c.Set("x", 1)
	c.Delete("x")
	c.Delete("x") // idempotent
	if _, ok := c.Get("x"); ok {
		t.Fatal("deleted entry still present")
	}
}

func TestManagerSweep(t *testing.T) {
	c := NewLRUCache[float64](10, time.Millisecond)
	c.Set("stale", 1)

	m := NewManager()
	m.Register(c)
	m.StartCleanup(5 * time.Millisecond)
	defer m.Stop()

	deadline := time.Now().Add(time.Second)
	for c.Size() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweep never removed the expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
