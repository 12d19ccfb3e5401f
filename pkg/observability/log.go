package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every pipeline and cache event to a logger at debug level.
// It implements both [PipelineHooks] and [CacheHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to l under the "hooks" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load start", "path", path)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, path string, itemCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "duration", duration, "error", err)
		return
	}
	h.logger.Debug("load complete", "path", path, "items", itemCount, "duration", duration)
}

func (h *LogHooks) OnPrune(_ context.Context, subprocessName string, removed int, duration time.Duration) {
	h.logger.Debug("prune", "subprocess", subprocessName, "removed", removed, "duration", duration)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "duration", duration, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", duration)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
