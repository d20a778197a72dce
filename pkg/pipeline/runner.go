package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodetraversal/pkg/cache"
	"github.com/matzehuels/nodetraversal/pkg/graph"
	"github.com/matzehuels/nodetraversal/pkg/io"
	"github.com/matzehuels/nodetraversal/pkg/observability"
	"github.com/matzehuels/nodetraversal/pkg/render/nodelink"
	"github.com/matzehuels/nodetraversal/pkg/report"
	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// cacheKeyRender labels render cache events for observability hooks.
const cacheKeyRender = "render"

// Runner executes pipeline stages with render caching.
//
// The Runner keeps no per-run state besides its cache and logger, so the
// HTTP viewer can share one Runner across requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs load, traverse and (unless opts.NoRender) render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, skipped, err := r.load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.SkippedLines = skipped

	opts.Logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"skipped_lines", skipped,
		"duration", result.Stats.LoadTime)

	// Stage 2: Traverse
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	traverseStart := time.Now()
	runs, err := r.Traverse(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("traverse: %w", err)
	}
	result.Runs = runs
	result.Stats.TraverseTime = time.Since(traverseStart)

	if opts.NoRender {
		return result, nil
	}

	// Stage 3: Render
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dist, err := dijkstraFrom(runs, g, opts.Start)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Dijkstra = dist

	renderStart := time.Now()
	dot, artifact, hit, err := r.RenderWithCacheInfo(ctx, g, dist, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.DOT = dot
	result.Artifact = artifact
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered diagram",
		"format", opts.Format,
		"layout", opts.Layout,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads opts.Input. Skipped lines are logged at debug level.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Graph, error) {
	r.applyLogger(&opts)
	g, _, err := r.load(ctx, opts)
	return g, err
}

func (r *Runner) load(ctx context.Context, opts Options) (*graph.Graph, int, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	skipped := 0
	g, err := io.Import(opts.Input, io.ReadOptions{
		OnSkip: func(lineNo int, text string) {
			skipped++
			opts.Logger.Debug("skipped line", "file", opts.Input, "line", lineNo, "text", text)
		},
	})
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Input, 0, 0, time.Since(start), err)
		return nil, 0, err
	}
	hooks.OnLoadComplete(ctx, opts.Input, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	return g, skipped, nil
}

// Traverse runs the selected algorithms from opts.Start, in report order.
// For each run it logs how many edges are still relaxable, which is zero
// for Dijkstra and may be positive for BFS and DFS on weighted graphs.
func (r *Runner) Traverse(ctx context.Context, g *graph.Graph, opts Options) ([]report.Run, error) {
	r.applyLogger(&opts)
	algs := opts.algorithms
	if !opts.validated {
		if err := opts.validateTraversal(); err != nil {
			return nil, err
		}
		algs = opts.algorithms
	}

	hooks := observability.Pipeline()
	runs := make([]report.Run, 0, len(algs))
	for _, a := range algs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		d, err := a.Run(g, opts.Start)
		if err != nil {
			hooks.OnTraverse(ctx, a.Name, 0, 0, time.Since(start), err)
			return nil, fmt.Errorf("%s: %w", a.Name, err)
		}
		elapsed := time.Since(start)
		reachable := 0
		for _, n := range d.Nodes() {
			if d.Reachable(n) {
				reachable++
			}
		}
		relaxable := len(traverse.Violations(g, d))
		hooks.OnTraverse(ctx, a.Name, reachable, relaxable, elapsed, nil)
		opts.Logger.Debug("traversed",
			"algorithm", a.Name,
			"start", opts.Start,
			"reachable", reachable,
			"relaxable_edges", relaxable,
			"duration", elapsed)
		runs = append(runs, report.Run{Algorithm: a, Distances: d})
	}
	return runs, nil
}

// RenderWithCacheInfo draws g with dist and returns the DOT source, the
// artifact in opts.Format, and whether the artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, dist *traverse.Distances, opts Options) (string, []byte, bool, error) {
	r.applyLogger(&opts)
	if !opts.validated {
		if err := opts.validateRender(); err != nil {
			return "", nil, false, err
		}
	}

	dot := nodelink.ToDOT(g, dist, nodelink.Options{Title: opts.Title, Engine: opts.engine})
	key := cache.RenderKey(dot, cache.RenderKeyOpts{Format: opts.Format, Engine: opts.Layout})

	cacheHooks := observability.Cache()
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, cacheKeyRender)
			return dot, data, true, nil
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, cacheKeyRender)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format, opts.Layout)
	start := time.Now()
	data, err := nodelink.Render(ctx, dot, opts.format, opts.engine)
	hooks.OnRenderComplete(ctx, opts.Format, opts.Layout, time.Since(start), err)
	if err != nil {
		return "", nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err != nil {
		opts.Logger.Debug("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, cacheKeyRender, len(data))
	}
	return dot, data, false, nil
}

// Render is a convenience wrapper around RenderWithCacheInfo that returns
// only the artifact.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, dist *traverse.Distances, opts Options) ([]byte, error) {
	_, data, _, err := r.RenderWithCacheInfo(ctx, g, dist, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// dijkstraFrom returns the Dijkstra distances among runs, computing them if
// Dijkstra was not selected.
func dijkstraFrom(runs []report.Run, g *graph.Graph, start graph.NodeID) (*traverse.Distances, error) {
	for _, run := range runs {
		if run.Algorithm.Name == traverse.NameDijkstra {
			return run.Distances, nil
		}
	}
	return traverse.Dijkstra(g, start)
}
