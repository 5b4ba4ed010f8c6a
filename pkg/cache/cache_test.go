package cache

import (
	"context"
	"errors"
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
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("expected miss for missing key")
	}
	if err := c.Set(ctx, "k", []byte("layout"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "layout" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expected miss after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, hit, err := c.Get(ctx, "k")
	if err != nil || hit {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if !strings.HasPrefix(k.DatasetKey("sqlite", "family.db"), "dataset:sqlite:") {
		t.Error("DatasetKey should carry the driver")
	}
	if k.DatasetKey("sqlite", "a.db") == k.DatasetKey("sqlite", "b.db") {
		t.Error("different sources should produce different dataset keys")
	}

	tests := []struct {
		name string
		a, b LayoutKeyOpts
	}{
		{"mode", LayoutKeyOpts{Mode: "vertical"}, LayoutKeyOpts{Mode: "radial"}},
		{"unit width", LayoutKeyOpts{UnitWidth: 150}, LayoutKeyOpts{UnitWidth: 160}},
		{"ring gap", LayoutKeyOpts{RingGap: 200}, LayoutKeyOpts{RingGap: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if k.LayoutKey("h", tt.a) == k.LayoutKey("h", tt.b) {
				t.Error("options should change the layout key")
			}
		})
	}
	if k.LayoutKey("h1", LayoutKeyOpts{}) == k.LayoutKey("h2", LayoutKeyOpts{}) {
		t.Error("dataset hash should change the layout key")
	}

	svg := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	png := k.ArtifactKey("h", ArtifactKeyOpts{Format: "png", Style: "simple"})
	if svg == png {
		t.Error("format should change the artifact key")
	}
	if !strings.HasPrefix(svg, "artifact:svg:") {
		t.Errorf("ArtifactKey = %s", svg)
	}
	filtered := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Style: "simple", Filter: "clan=Okafor"})
	if filtered == svg {
		t.Error("filter should change the artifact key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tree:smith:")

	if got, want := scoped.DatasetKey("json", "f"), "tree:smith:"+inner.DatasetKey("json", "f"); got != want {
		t.Errorf("DatasetKey = %s, want %s", got, want)
	}
	if got := scoped.LayoutKey("h", LayoutKeyOpts{}); !strings.HasPrefix(got, "tree:smith:layout:") {
		t.Errorf("LayoutKey = %s", got)
	}
	if got := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "pdf"}); !strings.HasPrefix(got, "tree:smith:artifact:pdf:") {
		t.Errorf("ArtifactKey = %s", got)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.DatasetKey("json", "f"); got != "p:"+inner.DatasetKey("json", "f") {
		t.Errorf("nil inner keyer: %s", got)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("wrapped error should be retryable")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("wrapped error should unwrap")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message changed: %s", err)
	}
	if IsRetryable(ErrUnavailable) {
		t.Error("bare error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		calls := 0
		if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
			t.Errorf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("permanent", func(t *testing.T) {
		calls := 0
		perm := errors.New("bad address")
		err := RetryWithBackoff(ctx, func() error { calls++; return perm })
		if err != perm || calls != 1 {
			t.Errorf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("transient", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 2 {
				return Retryable(ErrUnavailable)
			}
			return nil
		})
		if err != nil || calls != 2 {
			t.Errorf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrUnavailable) })
		if !errors.Is(err, ErrUnavailable) || calls != 3 {
			t.Errorf("err=%v calls=%d", err, calls)
		}
	})
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrUnavailable) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
