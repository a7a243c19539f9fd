package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
)

func (h LogHooks) OnLayoutStart(_ context.Context, layoutType string, pathCount int) {
	h.Logger.Debug("layout started", "type", layoutType, "paths", pathCount)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, layoutType string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "type", layoutType, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout finished", "type", layoutType, "nodes", nodeCount, "duration", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "key", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "key", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "key", keyType, "bytes", size)
}
