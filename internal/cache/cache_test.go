package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100, StringHasher)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestNewDefaultCapacity(t *testing.T) {
	c := New[string, int](0, StringHasher)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("expected capacity %d, got %d", DefaultCapacity, c.Capacity())
	}
}

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10, StringHasher)

	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	_, ok = c.Get("nonexistent")
	if ok {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestCacheUpdateExisting(t *testing.T) {
	c := New[string, int](10, StringHasher)

	c.Set("key1", 1)
	c.Set("key1", 2)

	if c.Len() != 1 {
		t.Errorf("expected 1 entry after update, got %d", c.Len())
	}
	if val, _ := c.Get("key1"); val != 2 {
		t.Errorf("expected updated value 2, got %d", val)
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](10, StringHasher)
	createCalled := 0

	// First call creates.
	val := c.GetOrCreate("key1", func() int {
		createCalled++
		return 100
	})
	if val != 100 {
		t.Errorf("expected 100, got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create called once, got %d", createCalled)
	}

	// Second call returns the cached value.
	val = c.GetOrCreate("key1", func() int {
		createCalled++
		return 200
	})
	if val != 100 {
		t.Errorf("expected 100 (cached), got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create still called once, got %d", createCalled)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](10, StringHasher)

	c.Set("key1", 42)

	if !c.Delete("key1") {
		t.Error("expected Delete to return true for existing key")
	}
	if _, ok := c.Get("key1"); ok {
		t.Error("expected key1 to be deleted")
	}
	if c.Delete("nonexistent") {
		t.Error("expected Delete to return false for non-existing key")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](10, StringHasher)

	c.Set("key1", 1)
	c.Set("key2", 2)
	c.Set("key3", 3)

	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected 0 entries after clear, got %d", c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	// Keys 0, 16 and 32 all land in shard 0 under the identity
	// hasher, so a per-shard capacity of 2 must evict the oldest.
	c := New[uint64, int](2, Uint64Hasher)

	c.Set(0, 0)
	c.Set(16, 16)
	c.Set(32, 32)

	if _, ok := c.Get(0); ok {
		t.Error("expected oldest entry 0 to be evicted")
	}
	for _, key := range []uint64{16, 32} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected entry %d to survive", key)
		}
	}
	if ev := c.Stats().Evictions; ev != 1 {
		t.Errorf("expected 1 eviction, got %d", ev)
	}
}

func TestCacheLRUOrder(t *testing.T) {
	c := New[uint64, int](2, Uint64Hasher)

	c.Set(0, 0)
	c.Set(16, 16)
	// Touch 0 so 16 becomes the eviction candidate.
	c.Get(0)
	c.Set(32, 32)

	if _, ok := c.Get(16); ok {
		t.Error("expected least recently used entry 16 to be evicted")
	}
	if _, ok := c.Get(0); !ok {
		t.Error("expected recently touched entry 0 to survive")
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string, int](10, StringHasher)

	c.Set("key1", 1)
	c.Set("key2", 2)

	c.Get("key1")
	c.Get("key1")
	c.Get("nonexistent")

	stats := c.Stats()
	if stats.Len != 2 {
		t.Errorf("expected Len=2, got %d", stats.Len)
	}
	if stats.Hits != 2 {
		t.Errorf("expected Hits=2, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected Misses=1, got %d", stats.Misses)
	}
	if want := 2.0 / 3.0; stats.HitRate != want {
		t.Errorf("expected HitRate=%v, got %v", want, stats.HitRate)
	}
}

func TestCacheResetStats(t *testing.T) {
	c := New[string, int](10, StringHasher)

	c.Set("key1", 1)
	c.Get("key1")
	c.Get("nonexistent")

	c.ResetStats()

	stats := c.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.Evictions != 0 {
		t.Errorf("expected all stats to be 0 after reset, got hits=%d misses=%d evictions=%d",
			stats.Hits, stats.Misses, stats.Evictions)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](1000, func(i int) uint64 { return uint64(i) })
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(n*100+j, n*100+j)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() == 0 {
		t.Error("expected non-empty cache after concurrent operations")
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[string, int](100, StringHasher)
	for i := 0; i < 100; i++ {
		c.Set(strconv.Itoa(i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("50")
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := New[string, int](100, StringHasher)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(strconv.Itoa(i%100), i)
	}
}

func BenchmarkCacheParallel(b *testing.B) {
	c := New[uint64, int](100, Uint64Hasher)
	for i := 0; i < 1000; i++ {
		c.Set(uint64(i), i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := uint64(0)
		for pb.Next() {
			c.Get(i % 1000)
			i++
		}
	})
}
