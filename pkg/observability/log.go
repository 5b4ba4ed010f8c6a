package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a charmbracelet logger at debug level.
// Failures are logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to the default logger if l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnLoadStart(_ context.Context, driver string) {
	h.Logger.Debug("loading people", "driver", driver)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, driver string, people int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("load failed", "driver", driver, "error", err)
		return
	}
	h.Logger.Debug("loaded people", "driver", driver, "people", people, "duration", d)
}

func (h *LogHooks) OnBuild(_ context.Context, roots, units int, d time.Duration) {
	h.Logger.Debug("built forest", "roots", roots, "units", units, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, mode string, units int) {
	h.Logger.Debug("layout started", "mode", mode, "units", units)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, mode string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "mode", mode, "error", err)
		return
	}
	h.Logger.Debug("layout complete", "mode", mode, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, layer string) {
	h.Logger.Debug("cache hit", "layer", layer)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, layer string) {
	h.Logger.Debug("cache miss", "layer", layer)
}

func (h *LogHooks) OnCacheSet(_ context.Context, layer string, size int) {
	h.Logger.Debug("cache set", "layer", layer, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
