// Package observability provides hooks for metrics, tracing and logging.
//
// Hooks let callers instrument kintree without the library packages depending
// on a particular backend. Register implementations once at startup:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//
// Library code emits events through the registry:
//
//	observability.Pipeline().OnLayoutStart(ctx, "radial", units)
//	// ... compute ...
//	observability.Pipeline().OnLayoutComplete(ctx, "radial", time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the load → build → layout → render pipeline.
type PipelineHooks interface {
	// Load events cover reading person records from a store.
	OnLoadStart(ctx context.Context, driver string)
	OnLoadComplete(ctx context.Context, driver string, people int, duration time.Duration, err error)

	// OnBuild reports the couple forest built from the normalized people.
	OnBuild(ctx context.Context, roots, units int, duration time.Duration)

	OnLayoutStart(ctx context.Context, mode string, units int)
	OnLayoutComplete(ctx context.Context, mode string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. layer is "dataset",
// "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, layer string)
	OnCacheMiss(ctx context.Context, layer string)
	OnCacheSet(ctx context.Context, layer string, size int)
}

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}

func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}

func (NoopPipelineHooks) OnBuild(context.Context, int, int, time.Duration) {}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int) {}

func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}

func (NoopPipelineHooks) OnRenderStart(context.Context, []string) {}

func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every event.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string) {}

func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	serverHooks   ServerHooks   = NoopServerHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers HTTP server hooks. nil is ignored.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered HTTP server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
