package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(1024)
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "a", []byte("alpha"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "alpha" {
		t.Fatalf("Get(a) = %q, %v, %v", data, hit, err)
	}

	// Returned slices are copies
	data[0] = 'X'
	if again, _, _ := c.Get(ctx, "a"); string(again) != "alpha" {
		t.Errorf("cache data mutated through returned slice: %q", again)
	}

	// Overwrite replaces
	_ = c.Set(ctx, "a", []byte("beta"), 0)
	if data, _, _ := c.Get(ctx, "a"); string(data) != "beta" {
		t.Errorf("overwrite: got %q", data)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(1024)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("x"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("y"), 0)

	now = now.Add(30 * time.Second)
	if _, hit, _ := c.Get(ctx, "short"); !hit {
		t.Error("entry should still be fresh")
	}

	now = now.Add(time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("entry should have expired")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after expiry", c.Len())
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	_ = c.Set(ctx, "a", []byte("1234"), 0)
	_ = c.Set(ctx, "b", []byte("1234"), 0)
	// Touch a so b becomes least recently used.
	_, _, _ = c.Get(ctx, "a")
	_ = c.Set(ctx, "c", []byte("1234"), 0)

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should still be cached", k)
		}
	}

	// Oversized values are not stored
	_ = c.Set(ctx, "huge", []byte(strings.Repeat("x", 11)), 0)
	if _, hit, _ := c.Get(ctx, "huge"); hit {
		t.Error("value above limit should not be stored")
	}
}

func TestMemoryCacheAccounting(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	// Overwrites and deletes release the bytes of the old value.
	_ = c.Set(ctx, "a", []byte("1234"), 0)
	_ = c.Set(ctx, "a", []byte("12345678"), 0)
	_ = c.Set(ctx, "b", []byte("12"), 0)
	for _, k := range []string{"a", "b"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should fit within the limit", k)
		}
	}

	_ = c.Delete(ctx, "a")
	_ = c.Set(ctx, "c", []byte("12345678"), 0)
	if _, hit, _ := c.Get(ctx, "b"); !hit {
		t.Error("b should survive once a was deleted")
	}

	_ = c.Close()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Close", c.Len())
	}
	_ = c.Set(ctx, "d", []byte("1234567890"), 0)
	if _, hit, _ := c.Get(ctx, "d"); !hit {
		t.Error("a closed cache should start empty with the full limit")
	}
}

func TestMemoryCacheEntryBound(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	for i := 0; i <= maxMemoryEntries; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), []byte("x"), 0)
	}
	if c.Len() != maxMemoryEntries {
		t.Errorf("Len() = %d, want %d", c.Len(), maxMemoryEntries)
	}
	if _, hit, _ := c.Get(ctx, "k0"); hit {
		t.Error("oldest entry should be evicted past the entry bound")
	}
	if c.size != maxMemoryEntries {
		t.Errorf("size = %d, want %d", c.size, maxMemoryEntries)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := SheetKeyOpts{Photo: "1inch", Paper: "6inch", Orientation: "auto", Background: "#ffffff", Scale: 1, Crop: "center"}

	k1 := k.SheetKey("src", base)
	if !strings.HasPrefix(k1, "sheet:") {
		t.Errorf("SheetKey should be prefixed: %s", k1)
	}
	if k1 != k.SheetKey("src", base) {
		t.Error("SheetKey should be deterministic")
	}

	variants := []SheetKeyOpts{base, base, base, base}
	variants[0].Paper = "a4"
	variants[1].Background = "#000078"
	variants[2].Scale = 2
	variants[3].Crop = "smart"
	for _, v := range variants {
		if k.SheetKey("src", v) == k1 {
			t.Errorf("options %+v should change the key", v)
		}
	}
	if k.SheetKey("other", base) == k1 {
		t.Error("source key should change the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	key := scoped.SheetKey("src", SheetKeyOpts{})
	if key != "user:123:"+inner.SheetKey("src", SheetKeyOpts{}) {
		t.Errorf("ScopedKeyer SheetKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.SheetKey("src", SheetKeyOpts{})
	if !strings.HasPrefix(key, "prefix:sheet:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
