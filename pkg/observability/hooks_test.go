package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "graph.dot")
	p.OnLoadComplete(ctx, "graph.dot", 10, 13, time.Second, nil)
	p.OnTraverse(ctx, "dijkstra", 10, 0, time.Millisecond, nil)
	p.OnRenderStart(ctx, "svg", "neato")
	p.OnRenderComplete(ctx, "svg", "neato", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)

	// Server hooks
	NoopServerHooks{}.OnRequest(ctx, "GET", "/", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	counters := NewCounters()
	SetPipelineHooks(counters)
	SetCacheHooks(counters)
	SetServerHooks(counters)
	if Pipeline() != PipelineHooks(counters) || Cache() != CacheHooks(counters) || Server() != ServerHooks(counters) {
		t.Error("Set*Hooks should register the given hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := NewCounters()
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnLoadComplete(ctx, "g.dot", 5, 5, time.Millisecond, nil)
	c.OnLoadComplete(ctx, "missing.dot", 0, 0, 0, errors.New("boom"))
	c.OnTraverse(ctx, "bfs", 4, 1, time.Millisecond, nil)
	c.OnTraverse(ctx, "bfs", 4, 1, time.Millisecond, nil)
	c.OnTraverse(ctx, "dfs", 0, 0, 0, errors.New("start not found"))
	c.OnRenderComplete(ctx, "svg", "neato", 20*time.Millisecond, nil)
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 512)
	c.OnCacheHit(ctx, "render")
	c.OnRequest(ctx, "GET", "/", 200, time.Millisecond)
	c.OnRequest(ctx, "GET", "/", 500, time.Millisecond)

	s := c.Snapshot()
	if s.Loads != 2 || s.LoadErrors != 1 {
		t.Errorf("loads = %d/%d errors, want 2/1", s.Loads, s.LoadErrors)
	}
	if s.Traversals["bfs"] != 2 || s.Traversals["dfs"] != 0 {
		t.Errorf("traversals = %v", s.Traversals)
	}
	if s.Renders != 1 || s.RenderTime != "20ms" {
		t.Errorf("renders = %d in %s", s.Renders, s.RenderTime)
	}
	if s.CacheHits != 1 || s.CacheMiss != 1 || s.CacheBytes != 512 {
		t.Errorf("cache = %d hits, %d misses, %d bytes", s.CacheHits, s.CacheMiss, s.CacheBytes)
	}
	if s.Requests["/"] != 2 || s.Errors != 1 {
		t.Errorf("requests = %v, errors = %d", s.Requests, s.Errors)
	}

	// Snapshots are copies.
	s.Traversals["bfs"] = 99
	if c.Snapshot().Traversals["bfs"] != 2 {
		t.Error("mutating a snapshot should not affect the counters")
	}
}

func TestCountersConcurrent(t *testing.T) {
	c := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnCacheHit(context.Background(), "render")
			c.OnRequest(context.Background(), "GET", "/graph.svg", 200, 0)
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	if s.CacheHits != 50 || s.Requests["/graph.svg"] != 50 {
		t.Errorf("hits = %d, requests = %v", s.CacheHits, s.Requests)
	}
}
