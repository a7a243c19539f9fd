package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "view"); hit {
		t.Error("Get() on empty cache hit")
	}
	if err := c.Set(ctx, "view", []byte(`{"id":"v"}`), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "view")
	if err != nil || !hit || string(data) != `{"id":"v"}` {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "view"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "view"); hit {
		t.Error("Get() after Delete hit")
	}
	if err := c.Delete(ctx, "view"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry still on disk: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := os.WriteFile(c.path("k"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt Get() = %v, %v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if n, err := c.Len(); err != nil || n != 3 {
		t.Errorf("Len() = %d, %v, want 3", n, err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear() left %d entries", len(entries))
	}
}

func TestFileCacheCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "k", nil, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v, want context.Canceled", err)
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash is not deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("different inputs share a hash")
	}
	if n := len(Hash(nil)); n != 64 {
		t.Errorf("len(Hash) = %d, want 64", n)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	a := k.ViewKey("p", ViewKeyOpts{Settings: map[string]int{"maxHorizontalCount": 6}})
	b := k.ViewKey("p", ViewKeyOpts{Settings: map[string]int{"maxHorizontalCount": 4}})
	if a == b {
		t.Error("settings do not change the view key")
	}
	if !strings.HasPrefix(a, "view:") {
		t.Errorf("ViewKey() = %q, want view: prefix", a)
	}
	if k.ArtifactKey("v", "svg") == k.ArtifactKey("v", "png") {
		t.Error("format does not change the artifact key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(nil, "team:")
	if got, want := scoped.ArtifactKey("v", "svg"), "team:"+inner.ArtifactKey("v", "svg"); got != want {
		t.Errorf("ArtifactKey() = %q, want %q", got, want)
	}
	if got := scoped.ViewKey("p", ViewKeyOpts{}); !strings.HasPrefix(got, "team:view:") {
		t.Errorf("ViewKey() = %q, want team:view: prefix", got)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	calls := 0
	err := RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err = %v, calls = %d, want nil, 2", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		return boom
	})
	if err != boom || calls != 1 {
		t.Errorf("permanent: err = %v, calls = %d, want boom, 1", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d, want ErrUnavailable, 3", err, calls)
	}

	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
}

func TestRetryWithBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, 3, time.Hour, func() error { return Retryable(ErrUnavailable) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheFromClient(client, WithRetry(1, 0))
	defer c.Close()

	if _, hit, err := c.Get(context.Background(), "k"); err == nil || hit {
		t.Errorf("Get() = %v, %v, want error", hit, err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache("not a url"); err == nil {
		t.Error("NewRedisCache(bad url) error = nil")
	}
}
