package traverse

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/graph"
)

var inf = math.Inf(1)

// build creates a graph from (from, to, weight) triples in order.
func build(edges ...[3]int) *graph.Graph {
	g := graph.New()
	for _, e := range edges {
		g.AddEdge(graph.NodeID(e[0]), graph.NodeID(e[1]), e[2])
	}
	return g
}

func assertDistances(t *testing.T, name string, d *Distances, want map[graph.NodeID]float64) {
	t.Helper()
	if diff := cmp.Diff(want, d.Map()); diff != "" {
		t.Errorf("%s: distances mismatch (-want +got):\n%s", name, diff)
	}
}

func TestSimpleChain(t *testing.T) {
	g := build([3]int{1, 2, 5}, [3]int{2, 3, 3})
	want := map[graph.NodeID]float64{1: 0, 2: 5, 3: 8}

	for _, a := range All() {
		d, err := a.Run(g, 1)
		if err != nil {
			t.Fatalf("%s: %v", a.Name, err)
		}
		assertDistances(t, a.Name, d, want)
	}
}

func TestDisconnectedNodeStaysInfinite(t *testing.T) {
	g := build([3]int{1, 2, 5}, [3]int{2, 3, 3}, [3]int{4, 5, 1})
	want := map[graph.NodeID]float64{1: 0, 2: 5, 3: 8, 4: inf, 5: inf}

	for _, a := range All() {
		d, err := a.Run(g, 1)
		if err != nil {
			t.Fatalf("%s: %v", a.Name, err)
		}
		assertDistances(t, a.Name, d, want)
		if d.Reachable(4) || d.Reachable(5) {
			t.Errorf("%s: nodes 4 and 5 should be unreachable", a.Name)
		}
	}
}

func TestTiesFollowInsertionOrder(t *testing.T) {
	// Two equal-weight edges leave node 1; whichever was inserted first is
	// the one DFS descends into first.
	tests := []struct {
		name    string
		g       *graph.Graph
		wantDFS float64
		wantBFS float64
	}{
		{
			name:    "via 2 first",
			g:       build([3]int{1, 2, 2}, [3]int{1, 3, 2}, [3]int{2, 4, 5}, [3]int{3, 4, 1}),
			wantDFS: 7,
			wantBFS: 3,
		},
		{
			name:    "via 3 first",
			g:       build([3]int{1, 3, 2}, [3]int{1, 2, 2}, [3]int{2, 4, 5}, [3]int{3, 4, 1}),
			wantDFS: 3,
			wantBFS: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dfs, err := DFS(tt.g, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := dfs.Get(4); got != tt.wantDFS {
				t.Errorf("DFS dist[4] = %v, want %v", got, tt.wantDFS)
			}

			bfs, err := BFS(tt.g, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := bfs.Get(4); got != tt.wantBFS {
				t.Errorf("BFS dist[4] = %v, want %v", got, tt.wantBFS)
			}

			dij, err := Dijkstra(tt.g, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := dij.Get(4); got != 3 {
				t.Errorf("Dijkstra dist[4] = %v, want 3", got)
			}
		})
	}
}

func TestWeightedDivergence(t *testing.T) {
	// The direct edge 1->2 is found first but the detour 1->3->4->2 is shorter.
	g := build([3]int{1, 2, 10}, [3]int{1, 3, 1}, [3]int{3, 4, 1}, [3]int{4, 2, 1})

	dij, err := Dijkstra(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertDistances(t, "dijkstra", dij, map[graph.NodeID]float64{1: 0, 2: 3, 3: 1, 4: 2})
	if v := Violations(g, dij); len(v) != 0 {
		t.Errorf("Dijkstra violations = %v, want none", v)
	}

	wantFirstFound := map[graph.NodeID]float64{1: 0, 2: 10, 3: 1, 4: 2}
	for _, run := range []struct {
		name string
		fn   Func
	}{{"bfs", BFS}, {"dfs", DFS}} {
		d, err := run.fn(g, 1)
		if err != nil {
			t.Fatal(err)
		}
		assertDistances(t, run.name, d, wantFirstFound)

		want := []graph.Edge{{From: 4, To: 2, Weight: 1}}
		if got := Violations(g, d); !slices.Equal(got, want) {
			t.Errorf("%s violations = %v, want %v", run.name, got, want)
		}
	}
}

func TestBFSRequeuesUntilDequeued(t *testing.T) {
	// Node 4 is reached from both 2 and 3 before it is dequeued, so it is
	// queued twice; the second arrival may still lower its distance.
	g := build([3]int{1, 2, 1}, [3]int{1, 3, 1}, [3]int{2, 4, 4}, [3]int{3, 4, 1}, [3]int{4, 5, 1})
	d, err := BFS(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertDistances(t, "bfs", d, map[graph.NodeID]float64{1: 0, 2: 1, 3: 1, 4: 2, 5: 3})
}

func TestCyclesAndSelfLoops(t *testing.T) {
	g := build([3]int{1, 1, 5}, [3]int{1, 2, 1}, [3]int{2, 1, 1}, [3]int{2, 3, 2}, [3]int{3, 2, 1})
	want := map[graph.NodeID]float64{1: 0, 2: 1, 3: 3}

	for _, a := range All() {
		d, err := a.Run(g, 1)
		if err != nil {
			t.Fatalf("%s: %v", a.Name, err)
		}
		assertDistances(t, a.Name, d, want)
	}
}

func TestStartNotFound(t *testing.T) {
	g := build([3]int{1, 2, 1})
	for _, a := range All() {
		_, err := a.Run(g, 7)
		if !errors.Is(err, ErrStartNotFound) {
			t.Errorf("%s: err = %v, want ErrStartNotFound", a.Name, err)
		}
		if !errs.Is(err, errs.ErrCodeNodeNotFound) {
			t.Errorf("%s: code = %v, want %v", a.Name, errs.GetCode(err), errs.ErrCodeNodeNotFound)
		}
	}
}

func TestNilGraph(t *testing.T) {
	for _, a := range All() {
		if _, err := a.Run(nil, 1); !errors.Is(err, ErrGraphNil) {
			t.Errorf("%s: err = %v, want ErrGraphNil", a.Name, err)
		}
	}
}

func TestStartWithoutOutgoingEdges(t *testing.T) {
	g := build([3]int{1, 2, 1})
	for _, a := range All() {
		d, err := a.Run(g, 2)
		if err != nil {
			t.Fatalf("%s: %v", a.Name, err)
		}
		assertDistances(t, a.Name, d, map[graph.NodeID]float64{1: inf, 2: 0})
	}
}

func TestDeepChainDoesNotRecurse(t *testing.T) {
	const n = 200_000
	g := graph.New()
	for i := 1; i < n; i++ {
		g.AddEdge(graph.NodeID(i), graph.NodeID(i+1), 1)
	}

	for _, run := range []struct {
		name string
		fn   Func
	}{{"bfs", BFS}, {"dfs", DFS}} {
		d, err := run.fn(g, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got, _ := d.Get(n); got != n-1 {
			t.Errorf("%s: dist[%d] = %v, want %d", run.name, n, got, n-1)
		}
	}
}

func TestRandomGraphProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		g := graph.New()
		nodes := 2 + rng.Intn(12)
		for i := 0; i < nodes*2; i++ {
			g.AddEdge(graph.NodeID(1+rng.Intn(nodes)), graph.NodeID(1+rng.Intn(nodes)), rng.Intn(10))
		}
		start := g.Nodes()[0]

		dij, err := Dijkstra(g, start)
		if err != nil {
			t.Fatal(err)
		}
		if got, _ := dij.Get(start); got != 0 {
			t.Fatalf("iter %d: dist[start] = %v, want 0", iter, got)
		}
		if v := Violations(g, dij); len(v) != 0 {
			t.Fatalf("iter %d: Dijkstra violations %v", iter, v)
		}

		for _, run := range []struct {
			name string
			fn   Func
		}{{"bfs", BFS}, {"dfs", DFS}} {
			d, err := run.fn(g, start)
			if err != nil {
				t.Fatal(err)
			}
			if d.Len() != g.NodeCount() {
				t.Fatalf("iter %d: %s covers %d of %d nodes", iter, run.name, d.Len(), g.NodeCount())
			}
			for _, n := range g.Nodes() {
				got, _ := d.Get(n)
				best, _ := dij.Get(n)
				if got < best {
					t.Errorf("iter %d: %s dist[%d] = %v below shortest %v", iter, run.name, n, got, best)
				}
				if d.Reachable(n) != dij.Reachable(n) {
					t.Errorf("iter %d: %s reachability of %d differs from Dijkstra", iter, run.name, n)
				}
			}
		}
	}
}

func TestTreeEdges(t *testing.T) {
	g := build([3]int{1, 2, 10}, [3]int{1, 3, 1}, [3]int{3, 4, 1}, [3]int{4, 2, 1}, [3]int{5, 1, 1})
	d, err := Dijkstra(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []graph.Edge{{From: 1, To: 3, Weight: 1}, {From: 3, To: 4, Weight: 1}, {From: 4, To: 2, Weight: 1}}
	if got := TreeEdges(g, d); !slices.Equal(got, want) {
		t.Errorf("TreeEdges() = %v, want %v", got, want)
	}
	if d.OnTree(graph.Edge{From: 5, To: 1, Weight: 1}) {
		t.Error("edge from unreachable node should not be on the tree")
	}
}

func TestDistancesOrderAndCopy(t *testing.T) {
	g := build([3]int{3, 1, 1}, [3]int{1, 2, 1})
	d, err := Dijkstra(g, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Nodes(); !slices.Equal(got, []graph.NodeID{3, 1, 2}) {
		t.Errorf("Nodes() = %v", got)
	}
	m := d.Map()
	m[1] = 42
	if got, _ := d.Get(1); got != 1 {
		t.Errorf("Map() should return a copy, dist[1] = %v", got)
	}
	if d.Start != 3 {
		t.Errorf("Start = %d, want 3", d.Start)
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{"empty selects all", nil, []string{"dijkstra", "bfs", "dfs"}, false},
		{"report order", []string{"dfs", "dijkstra"}, []string{"dijkstra", "dfs"}, false},
		{"case and space", []string{" BFS "}, []string{"bfs"}, false},
		{"duplicates", []string{"bfs", "bfs"}, []string{"bfs"}, false},
		{"unknown", []string{"astar"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Select(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errs.Is(err, errs.ErrCodeInvalidAlgorithm) {
					t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidAlgorithm)
				}
				return
			}
			var names []string
			for _, a := range got {
				names = append(names, a.Name)
			}
			if !slices.Equal(names, tt.want) {
				t.Errorf("Select(%v) = %v, want %v", tt.in, names, tt.want)
			}
		})
	}
}
