package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmndot/pkg/bpmn"
	"github.com/matzehuels/bpmndot/pkg/cache"
	bpmnio "github.com/matzehuels/bpmndot/pkg/io"
	"github.com/matzehuels/bpmndot/pkg/observability"
)

// Runner executes conversions with artifact caching.
//
// The Runner is stateless except for the cache and logger, so one Runner
// can serve several goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load → prune → render. Nothing is written to disk; the
// caller stores the artifacts once the whole run succeeded.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.LoadedCount = g.Len()

	r.Logger.Info("loaded process",
		"items", g.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Prune
	if !opts.ShowErrorHandling {
		pruneStart := time.Now()
		g = r.Prune(ctx, g, opts.ExceptionSubprocessName)
		result.Stats.PruneTime = time.Since(pruneStart)
	}
	result.Graph = g
	result.Stats.ItemCount = g.Len()
	result.Stats.RemovedCount = result.Stats.LoadedCount - g.Len()

	// Stage 3: Render
	renderStart := time.Now()
	result.DOT = g.DOT(opts.DOTOptions())
	artifacts, info, err := r.RenderWithCacheInfo(ctx, g, result.DOT, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(info.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the process at path. Files with a .json extension are graphs
// exported with the json format; anything else is parsed as BPMN.
func (r *Runner) Load(ctx context.Context, path string) (g *bpmn.Graph, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	defer func() {
		n := 0
		if g != nil {
			n = g.Len()
		}
		hooks.OnLoadComplete(ctx, path, n, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return bpmnio.ImportJSON(path)
	}
	return bpmn.Load(path)
}

// Prune removes the error-handling region named name.
func (r *Runner) Prune(ctx context.Context, g *bpmn.Graph, name string) *bpmn.Graph {
	start := time.Now()
	pruned := PruneErrorHandling(g, name)
	removed := g.Len() - pruned.Len()

	observability.Pipeline().OnPrune(ctx, name, removed, time.Since(start))
	r.Logger.Debug("removed error handling",
		"subprocess", name,
		"removed", removed)
	return pruned
}

// RenderWithCacheInfo renders every requested format. Graphviz artifacts are
// looked up in the cache first and stored after rendering.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *bpmn.Graph, dot string, opts Options) (map[string][]byte, CacheInfo, error) {
	var info CacheInfo
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, info, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	dotHash := cache.Hash([]byte(dot))
	artifacts := make(map[string][]byte, len(opts.Formats))
	var pending []string

	for _, format := range opts.Formats {
		if !graphvizFormats[format] {
			pending = append(pending, format)
			continue
		}
		if data, hit := r.cached(ctx, dotHash, format, opts); hit {
			artifacts[format] = data
			info.Hits = append(info.Hits, format)
			continue
		}
		pending = append(pending, format)
	}
	info.RenderHit = opts.NeedsGraphviz() && !slices.ContainsFunc(pending, func(f string) bool { return graphvizFormats[f] })

	rendered, err := Render(ctx, g, dot, pending, opts.PNGScale)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, info, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if graphvizFormats[format] {
			r.store(ctx, dotHash, format, data, opts)
		}
	}
	return artifacts, info, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *bpmn.Graph, dot string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, dot, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactKey(dotHash, format string, opts Options) string {
	keyOpts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		keyOpts.Scale = opts.PNGScale
	}
	return r.Keyer.ArtifactKey(dotHash, keyOpts)
}

func (r *Runner) cached(ctx context.Context, dotHash, format string, opts Options) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, r.artifactKey(dotHash, format, opts))
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	r.Logger.Debug("cache hit", "format", format)
	return data, true
}

func (r *Runner) store(ctx context.Context, dotHash, format string, data []byte, opts Options) {
	if err := r.Cache.Set(ctx, r.artifactKey(dotHash, format, opts), data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}
