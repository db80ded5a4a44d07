package embedding

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	// touch "a" so "b" becomes the eviction candidate
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %d, %v", v, ok)
	}
	if evicted := c.Put("c", 3); !evicted {
		t.Error("expected an eviction at capacity")
	}

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
}

func TestLRU_NeverExceedsBound(t *testing.T) {
	c := NewLRU[string](DefaultCacheSize)
	for i := range DefaultCacheSize + 100 {
		c.Put(fmt.Sprintf("k%d", i), "v")
		if c.Len() > DefaultCacheSize {
			t.Fatalf("len %d exceeds bound after %d puts", c.Len(), i+1)
		}
	}
	if c.Len() != DefaultCacheSize {
		t.Errorf("expected %d entries, got %d", DefaultCacheSize, c.Len())
	}
	if _, ok := c.Get("k0"); ok {
		t.Error("oldest key should have been evicted")
	}
	if _, ok := c.Get(fmt.Sprintf("k%d", DefaultCacheSize+99)); !ok {
		t.Error("newest key should be present")
	}
}

func TestLRU_PutExistingRefreshes(t *testing.T) {
	c := NewLRU[int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	if evicted := c.Put("a", 10); evicted {
		t.Error("updating an existing key must not evict")
	}
	c.Put("c", 3)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("expected a=10, got %d, %v", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
}

func TestLRU_DefaultCapacity(t *testing.T) {
	if got := NewLRU[int](0).capacity; got != DefaultCacheSize {
		t.Errorf("expected default capacity %d, got %d", DefaultCacheSize, got)
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := fmt.Sprintf("k%d", (g*31+i)%40)
				c.Put(key, i)
				c.Get(key)
			}
		}()
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("len %d exceeds bound", c.Len())
	}
}
