package shape

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestCacheHit(t *testing.T) {
	c := NewCache(0)
	a := c.Parse(blobA)
	b := c.Parse(blobA)
	if !reflect.DeepEqual(a, b) {
		t.Error("cached parse differs from first parse")
	}
	if &a.Values[0][0] != &b.Values[0][0] {
		t.Error("expected the second parse to come from the cache")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheBound(t *testing.T) {
	c := NewCache(10)
	for i := 0; i < 50; i++ {
		c.Parse(fmt.Sprintf("M%d,0", i))
		if c.Len() > 10 {
			t.Fatalf("after %d inserts Len() = %d, over the limit", i+1, c.Len())
		}
	}

	// The most recent path survives eviction.
	c.mu.Lock()
	_, ok := c.entries["M49,0"]
	c.mu.Unlock()
	if !ok {
		t.Error("newest entry was evicted")
	}
}

func TestCacheNil(t *testing.T) {
	var c *Cache
	if got := c.Parse("M1,1"); got.Len() != 1 {
		t.Errorf("nil cache parse = %+v", got)
	}
	if c.Len() != 0 {
		t.Error("nil cache should be empty")
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache(20)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s := c.Parse(fmt.Sprintf("M%d,%d", i%30, g))
				if s.Len() != 1 {
					t.Errorf("bad parse %+v", s)
				}
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 20 {
		t.Errorf("Len() = %d, over the limit", c.Len())
	}
}
