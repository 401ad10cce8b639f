package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)

	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("expected hit with 1, got %d (hit=%v)", got, ok)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, 0)

	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected entry without positive ttl to never expire")
	}

	c.Set("b", 2, time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestTTLCacheFlush(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Flush()

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected flushed cache to miss")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected flushed cache to miss")
	}
}
