package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache should miss")
	}

	if err := c.Set(ctx, "a", []byte("alpha"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "alpha" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("deleting twice should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("bad")
	os.MkdirAll(filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "bad")
	if err != nil || hit || data != nil {
		t.Errorf("corrupt entry: got %q, %v, %v; want miss", data, hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), time.Hour)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty, has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := CompileKeyOpts{Lang: "en", Formats: []string{"text", "json"}}

	key := k.CompileKey("doc", base)
	if !strings.HasPrefix(key, "compile:") {
		t.Errorf("key should be namespaced: %s", key)
	}

	reordered := base
	reordered.Formats = []string{"json", "text"}
	if k.CompileKey("doc", reordered) != key {
		t.Error("format order should not change the key")
	}
	if base.Formats[0] != "text" {
		t.Error("CompileKey must not reorder the caller's formats")
	}

	variants := []CompileKeyOpts{
		{Lang: "ar", Formats: base.Formats},
		{Lang: "en", Primary: "rtl", Formats: base.Formats},
		{Lang: "en", Secondary: "btt", Formats: base.Formats},
		{Lang: "en", Formats: []string{"svg"}},
	}
	for _, v := range variants {
		if k.CompileKey("doc", v) == key {
			t.Errorf("options %+v should change the key", v)
		}
	}
	if k.CompileKey("other", base) == key {
		t.Error("document hash should change the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "server")

	key := scoped.CompileKey("doc", CompileKeyOpts{})
	if key != "server:"+inner.CompileKey("doc", CompileKeyOpts{}) {
		t.Errorf("unexpected scoped key: %s", key)
	}

	nilInner := NewScopedKeyer(nil, "cli:")
	if got := nilInner.CompileKey("doc", CompileKeyOpts{}); !strings.HasPrefix(got, "cli:compile:") {
		t.Errorf("nil inner should use the default keyer: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return ErrNetwork })
	if err != ErrNetwork || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry once: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); err == nil {
		t.Error("empty address should be rejected")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("unreachable redis should fail")
	}
}
