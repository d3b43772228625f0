package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute, 10)
	key := MakeKey(1, "/report")

	if _, ok := c.Get(key); ok {
		t.Error("Expected miss on empty cache")
	}

	c.Set(key, []byte(`[{"id":1}]`))
	body, ok := c.Get(key)
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if string(body) != `[{"id":1}]` {
		t.Errorf("Unexpected cached body: %s", body)
	}
}

func TestExpiry(t *testing.T) {
	c := New(10*time.Millisecond, 10)
	c.Set("1:/news", []byte("x"))

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("1:/news"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestEvictsOldestAtCapacity(t *testing.T) {
	c := New(time.Minute, 2)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	if _, ok := c.Get("a"); ok {
		t.Error("Expected oldest entry evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Expected newer entry retained")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("Expected newest entry retained")
	}
}

func TestUpdateExistingDoesNotEvict(t *testing.T) {
	c := New(time.Minute, 2)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("a", []byte("updated"))

	body, ok := c.Get("a")
	if !ok || string(body) != "updated" {
		t.Errorf("Expected updated body, got %q ok=%v", body, ok)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Expected b to survive an update to a")
	}
}

func TestInvalidateResource(t *testing.T) {
	c := New(time.Minute, 10)
	c.Set(MakeKey(1, "/report"), []byte("r1"))
	c.Set(MakeKey(2, "/report"), []byte("r2"))
	c.Set(MakeKey(1, "/news?limit=10"), []byte("n1"))
	c.Set(MakeKey(1, "/query"), []byte("q1"))

	c.InvalidateResource("/report")
	if _, ok := c.Get(MakeKey(1, "/report")); ok {
		t.Error("Expected /report for user 1 invalidated")
	}
	if _, ok := c.Get(MakeKey(2, "/report")); ok {
		t.Error("Expected /report for user 2 invalidated")
	}
	if _, ok := c.Get(MakeKey(1, "/query")); !ok {
		t.Error("Expected /query untouched")
	}

	// Query-string variants of the resource are invalidated too.
	c.InvalidateResource("/news")
	if _, ok := c.Get(MakeKey(1, "/news?limit=10")); ok {
		t.Error("Expected /news?limit=10 invalidated")
	}
}
