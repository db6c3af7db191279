package routecache

import (
	"sync"
	"testing"
	"time"

	"wayfarer/internal/planner"
)

func sampleRoute(timeBudget int) planner.Route {
	return planner.Route{
		{Kind: planner.Start, Sector: planner.Sector{TimeBudget: timeBudget}},
	}
}

func TestCache_SetGet(t *testing.T) {
	c := &Cache{entries: make(map[string]routeEntry), ttl: 1 * time.Minute}

	c.Set("key1", sampleRoute(100))
	got, ok := c.Get("key1")
	if !ok {
		t.Fatal("Get('key1') should return true")
	}
	if len(got) != 1 || got[0].Sector.TimeBudget != 100 {
		t.Errorf("Get('key1') = %+v, want a one-sector route with TimeBudget 100", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c := &Cache{entries: make(map[string]routeEntry), ttl: 1 * time.Minute}

	_, ok := c.Get("missing")
	if ok {
		t.Error("Get('missing') should return false")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := &Cache{entries: make(map[string]routeEntry), ttl: 50 * time.Millisecond}

	c.Set("key", sampleRoute(1))
	if _, ok := c.Get("key"); !ok {
		t.Fatal("key should be present immediately after Set")
	}

	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("key should be expired after TTL")
	}
}

func TestCache_Overwrite(t *testing.T) {
	c := &Cache{entries: make(map[string]routeEntry), ttl: 1 * time.Minute}

	c.Set("key", sampleRoute(1))
	c.Set("key", sampleRoute(2))

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get should return true")
	}
	if got[0].Sector.TimeBudget != 2 {
		t.Errorf("Get = %+v, want TimeBudget 2", got)
	}
}

func TestCache_Cleanup(t *testing.T) {
	c := &Cache{entries: make(map[string]routeEntry), ttl: 50 * time.Millisecond}

	c.Set("a", sampleRoute(1))
	c.Set("b", sampleRoute(2))

	time.Sleep(60 * time.Millisecond)

	c.Set("c", sampleRoute(3))
	c.cleanup()

	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.entries["a"]; ok {
		t.Error("expired entry 'a' should be cleaned up")
	}
	if _, ok := c.entries["b"]; ok {
		t.Error("expired entry 'b' should be cleaned up")
	}
	if _, ok := c.entries["c"]; !ok {
		t.Error("fresh entry 'c' should still be present")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := &Cache{entries: make(map[string]routeEntry), ttl: 1 * time.Second}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set("key", sampleRoute(n))
		}(i)
	}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get("key")
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.cleanup()
	}()

	wg.Wait()

	if _, ok := c.Get("key"); !ok {
		t.Error("key should exist after concurrent writes")
	}
}
