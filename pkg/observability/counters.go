package observability

import (
	"context"
	"sync"
	"time"
)

// Counters implements every hook interface by tallying events in memory.
// It is safe for concurrent use. The HTTP viewer serves its [Snapshot].
type Counters struct {
	mu      sync.Mutex
	started time.Time
	snap    Snapshot
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Uptime     string         `json:"uptime"`
	Loads      int            `json:"loads"`
	LoadErrors int            `json:"load_errors"`
	Traversals map[string]int `json:"traversals"`
	Renders    int            `json:"renders"`
	RenderErrs int            `json:"render_errors"`
	RenderTime string         `json:"render_time"`
	CacheHits  int            `json:"cache_hits"`
	CacheMiss  int            `json:"cache_misses"`
	CacheBytes int            `json:"cache_bytes_written"`
	Requests   map[string]int `json:"requests"`
	Errors     int            `json:"request_errors"`

	renderTime time.Duration
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{
		started: time.Now(),
		snap: Snapshot{
			Traversals: make(map[string]int),
			Requests:   make(map[string]int),
		},
	}
}

// Snapshot returns a copy of the current counts.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.Traversals = make(map[string]int, len(c.snap.Traversals))
	for k, v := range c.snap.Traversals {
		s.Traversals[k] = v
	}
	s.Requests = make(map[string]int, len(c.snap.Requests))
	for k, v := range c.snap.Requests {
		s.Requests[k] = v
	}
	s.Uptime = time.Since(c.started).Round(time.Second).String()
	s.RenderTime = s.renderTime.Round(time.Millisecond).String()
	return s
}

func (c *Counters) OnLoadStart(context.Context, string) {}

func (c *Counters) OnLoadComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Loads++
	if err != nil {
		c.snap.LoadErrors++
	}
}

func (c *Counters) OnTraverse(_ context.Context, algorithm string, _, _ int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Traversals[algorithm]++
}

func (c *Counters) OnRenderStart(context.Context, string, string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _, _ string, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Renders++
	c.snap.renderTime += d
	if err != nil {
		c.snap.RenderErrs++
	}
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.CacheHits++
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.CacheMiss++
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.CacheBytes += size
}

func (c *Counters) OnRequest(_ context.Context, _, route string, status int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Requests[route]++
	if status >= 500 {
		c.snap.Errors++
	}
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ ServerHooks   = (*Counters)(nil)
)
