package traverse

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/graph"
)

// Func computes distances from start over g.
type Func func(g *graph.Graph, start graph.NodeID) (*Distances, error)

// Algorithm names a traversal strategy.
type Algorithm struct {
	Name  string // flag and config value, e.g. "bfs"
	Title string // report heading
	Run   Func
}

// Algorithm names accepted by [Lookup].
const (
	NameDijkstra = "dijkstra"
	NameBFS      = "bfs"
	NameDFS      = "dfs"
)

var registry = []Algorithm{
	{Name: NameDijkstra, Title: "Dijkstra's Algorithm", Run: Dijkstra},
	{Name: NameBFS, Title: "Breadth-First Search", Run: BFS},
	{Name: NameDFS, Title: "Depth-First Search", Run: DFS},
}

// All returns every algorithm in report order: Dijkstra, BFS, DFS.
func All() []Algorithm { return slices.Clone(registry) }

// Names returns the names of all algorithms in report order.
func Names() []string {
	names := make([]string, len(registry))
	for i, a := range registry {
		names[i] = a.Name
	}
	return names
}

// Lookup resolves an algorithm by name, ignoring case and surrounding space.
func Lookup(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, a := range registry {
		if a.Name == key {
			return a, nil
		}
	}
	return Algorithm{}, errs.New(errs.ErrCodeInvalidAlgorithm,
		"unknown algorithm %q (must be one of %s)", name, strings.Join(Names(), ", "))
}

// Select resolves names and returns the matching algorithms in report order
// without duplicates. An empty list selects all of them.
func Select(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return All(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		a, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		want[a.Name] = true
	}
	var out []Algorithm
	for _, a := range registry {
		if want[a.Name] {
			out = append(out, a)
		}
	}
	return out, nil
}
