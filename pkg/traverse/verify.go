package traverse

import "github.com/matzehuels/nodetraversal/pkg/graph"

// Violations returns the edges (u, v, w) of g for which d[v] > d[u] + w,
// in edge insertion order. Distances at the relaxation fixpoint, such as
// those from [Dijkstra], have none.
func Violations(g *graph.Graph, d *Distances) []graph.Edge {
	var out []graph.Edge
	for _, e := range g.Edges() {
		du, okU := d.Get(e.From)
		dv, okV := d.Get(e.To)
		if okU && okV && dv > du+float64(e.Weight) {
			out = append(out, e)
		}
	}
	return out
}

// TreeEdges returns the edges of g that lie on the shortest-path tree
// described by d (see [Distances.OnTree]), in edge insertion order.
func TreeEdges(g *graph.Graph, d *Distances) []graph.Edge {
	var out []graph.Edge
	for _, e := range g.Edges() {
		if d.OnTree(e) {
			out = append(out, e)
		}
	}
	return out
}
