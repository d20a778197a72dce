package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodetraversal/pkg/cache"
	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/observability"
)

const sampleGraph = `digraph G {
  1 -> 2 [label="10"];
  1 -> 3 [label="1"];
  3 -> 4 [label="1"];
  4 -> 2 [label="1"];
  5 -> 1 [label="2"];
}
`

func writeGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.dot")
	if err := os.WriteFile(path, []byte(sampleGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, log.New(io.Discard))
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: "g.dot", Start: 1}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Format != "svg" || opts.Layout != "neato" {
		t.Errorf("defaults = %s/%s, want svg/neato", opts.Format, opts.Layout)
	}
	if n := len(opts.SelectedAlgorithms()); n != 3 {
		t.Errorf("selected %d algorithms, want 3", n)
	}

	// Idempotent.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"no input", Options{}, errs.ErrCodeInvalidInput},
		{"bad algorithm", Options{Input: "g", Algorithms: []string{"astar"}}, errs.ErrCodeInvalidAlgorithm},
		{"bad format", Options{Input: "g", Format: "pdf"}, errs.ErrCodeInvalidFormat},
		{"bad layout", Options{Input: "g", Layout: "spring"}, errs.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestExecuteNoRender(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), Options{Input: writeGraph(t), Start: 1, NoRender: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 5 || res.Stats.EdgeCount != 5 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.SkippedLines != 2 {
		t.Errorf("SkippedLines = %d, want 2 (header and closing brace)", res.Stats.SkippedLines)
	}
	if len(res.Runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(res.Runs))
	}

	want := map[string]float64{"dijkstra": 3, "bfs": 10, "dfs": 10}
	for _, run := range res.Runs {
		got, _ := run.Distances.Get(2)
		if got != want[run.Algorithm.Name] {
			t.Errorf("%s dist[2] = %v, want %v", run.Algorithm.Name, got, want[run.Algorithm.Name])
		}
	}
	if res.Artifact != nil || res.DOT != "" {
		t.Error("NoRender should skip rendering")
	}
}

func TestExecuteRendersDOTWithCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	opts := Options{Input: writeGraph(t), Start: 1, Format: "dot", Algorithms: []string{"bfs"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if len(first.Runs) != 1 || first.Runs[0].Algorithm.Name != "bfs" {
		t.Errorf("runs = %+v", first.Runs)
	}
	// Dijkstra is computed for the diagram even when not selected.
	if first.Dijkstra == nil {
		t.Fatal("Dijkstra distances missing")
	}
	if d, _ := first.Dijkstra.Get(2); d != 3 {
		t.Errorf("Dijkstra dist[2] = %v, want 3", d)
	}
	if !bytes.Contains(first.Artifact, []byte(`4 -> 2 [label="1", color=red];`)) {
		t.Errorf("artifact should mark tree edges red:\n%s", first.Artifact)
	}
	if string(first.Artifact) != first.DOT {
		t.Error("dot format artifact should equal the DOT source")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()

	_, err := r.Execute(ctx, Options{Input: filepath.Join(t.TempDir(), "missing.dot"), Start: 1})
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing input: err = %v, want FILE_NOT_FOUND", err)
	}

	_, err = r.Execute(ctx, Options{Input: writeGraph(t), Start: 42, NoRender: true})
	if !errs.Is(err, errs.ErrCodeNodeNotFound) {
		t.Errorf("unknown start: err = %v, want NODE_NOT_FOUND", err)
	}
	if err != nil && !strings.Contains(err.Error(), "dijkstra") {
		t.Errorf("error should name the failing algorithm: %v", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietRunner(nil).Execute(ctx, Options{Input: writeGraph(t), Start: 1})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadLogsSkippedLines(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	r := NewRunner(nil, logger)

	g, err := r.Load(context.Background(), Options{Input: writeGraph(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", g.EdgeCount())
	}
	if !strings.Contains(buf.String(), "skipped line") {
		t.Errorf("expected skipped-line debug output, got %q", buf.String())
	}
}

func TestExecuteEmitsHooks(t *testing.T) {
	counters := observability.NewCounters()
	observability.SetPipelineHooks(counters)
	observability.SetCacheHooks(counters)
	t.Cleanup(observability.Reset)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	opts := Options{Input: writeGraph(t), Start: 1, Format: "dot"}
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	s := counters.Snapshot()
	if s.Loads != 2 {
		t.Errorf("Loads = %d, want 2", s.Loads)
	}
	for _, name := range []string{"dijkstra", "bfs", "dfs"} {
		if s.Traversals[name] != 2 {
			t.Errorf("Traversals[%s] = %d, want 2", name, s.Traversals[name])
		}
	}
	if s.Renders != 1 || s.CacheMiss != 1 || s.CacheHits != 1 {
		t.Errorf("renders/misses/hits = %d/%d/%d, want 1/1/1", s.Renders, s.CacheMiss, s.CacheHits)
	}
	if s.CacheBytes == 0 {
		t.Error("cache write should be recorded")
	}
}
