package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "sqlite")
	p.OnLoadComplete(ctx, "sqlite", 12, time.Second, nil)
	p.OnBuild(ctx, 2, 7, time.Millisecond)
	p.OnLayoutStart(ctx, "radial", 7)
	p.OnLayoutComplete(ctx, "radial", time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "dataset", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/api/tree")
	s.OnResponse(ctx, "GET", "/api/tree", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should default to NoopServerHooks")
	}

	p := &recordingHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetServerHooks(p)
	if Pipeline() != p || Cache() != p || Server() != p {
		t.Error("Set* should register the hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != p {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore defaults")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&recordingHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), "layout")
		}()
	}
	wg.Wait()
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(l)
	ctx := context.Background()

	h.OnLoadComplete(ctx, "json", 4, time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "radial", time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "artifact")
	h.OnResponse(ctx, "GET", "/api/people", 404, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"loaded people", "layout failed", "boom", "cache hit", "status=404"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLogHooksNilLogger(t *testing.T) {
	if NewLogHooks(nil).Logger == nil {
		t.Error("nil logger should fall back to the default logger")
	}
}

type recordingHooks struct {
	NoopPipelineHooks
	NoopServerHooks
	mu   sync.Mutex
	hits int
}

func (r *recordingHooks) OnCacheHit(context.Context, string) {
	r.mu.Lock()
	r.hits++
	r.mu.Unlock()
}

func (r *recordingHooks) OnCacheMiss(context.Context, string) {}

func (r *recordingHooks) OnCacheSet(context.Context, string, int) {}
