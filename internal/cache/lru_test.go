package cache

import (
	"testing"
	"time"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[string](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Errorf("Get(missing) = hit, want miss")
	}

	c.Set("a", "1")
	got, ok := c.Get("a")
	if !ok || got != "1" {
		t.Errorf("Get(a) = (%q, %v), want (1, true)", got, ok)
	}
}

func TestLRU_EvictsOldest(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Errorf("least-recently-used entry b survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Errorf("recently used entry a was evicted")
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	c := NewLRU[int](10, 10*time.Millisecond)
	c.Set("a", 1)

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Errorf("expired entry still returned")
	}
	if size := c.Size(); size != 0 {
		t.Errorf("Size() = %d after expired Get, want 0", size)
	}
}

func TestLRU_CleanExpired(t *testing.T) {
	c := NewLRU[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)

	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)

	if cleaned := c.CleanExpired(); cleaned != 2 {
		t.Errorf("CleanExpired() = %d, want 2", cleaned)
	}
	if _, ok := c.Get("c"); !ok {
		t.Errorf("live entry c was cleaned")
	}
}
