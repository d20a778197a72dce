package graph

import "slices"

// Graph is a directed weighted graph with insertion-ordered iteration.
//
// The zero value is not usable - use [New].
type Graph struct {
	order []NodeID                  // nodes by first appearance
	known map[NodeID]struct{}       // membership for order
	adj   map[NodeID]map[NodeID]int // source -> destination -> weight
	dests map[NodeID][]NodeID       // source -> destinations by first insertion
	seq   []Edge                    // endpoints by first insertion; weights are looked up
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		known: make(map[NodeID]struct{}),
		adj:   make(map[NodeID]map[NodeID]int),
		dests: make(map[NodeID][]NodeID),
	}
}

// AddNode registers n without edges. Adding an existing node is a no-op.
func (g *Graph) AddNode(n NodeID) {
	if _, ok := g.known[n]; ok {
		return
	}
	g.known[n] = struct{}{}
	g.order = append(g.order, n)
}

// AddEdge inserts the edge from -> to with the given weight. Both endpoints
// are registered as nodes, source first. If the edge already exists its
// weight is replaced and its position among from's neighbors is kept.
func (g *Graph) AddEdge(from, to NodeID, weight int) {
	g.AddNode(from)
	g.AddNode(to)

	inner, ok := g.adj[from]
	if !ok {
		inner = make(map[NodeID]int)
		g.adj[from] = inner
	}
	if _, exists := inner[to]; !exists {
		g.dests[from] = append(g.dests[from], to)
		g.seq = append(g.seq, Edge{From: from, To: to})
	}
	inner[to] = weight
}

// HasNode reports whether n appears in the graph as a source or destination.
func (g *Graph) HasNode(n NodeID) bool {
	_, ok := g.known[n]
	return ok
}

// Nodes returns all node ids in order of first appearance.
// The returned slice is a copy.
func (g *Graph) Nodes() []NodeID {
	return slices.Clone(g.order)
}

// Neighbors returns the outgoing edges of n in insertion order.
// A node without outgoing edges (or an unknown node) yields nil.
func (g *Graph) Neighbors(n NodeID) []Edge {
	dests := g.dests[n]
	if len(dests) == 0 {
		return nil
	}
	out := make([]Edge, len(dests))
	for i, d := range dests {
		out[i] = Edge{From: n, To: d, Weight: g.adj[n][d]}
	}
	return out
}

// Weight returns the weight of from -> to and whether the edge exists.
func (g *Graph) Weight(from, to NodeID) (int, bool) {
	w, ok := g.adj[from][to]
	return w, ok
}

// Edges returns every edge in the order it was first added.
// Replaying them through AddEdge on an empty graph reproduces g's node and
// neighbor order, except for nodes added with AddNode alone.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.seq))
	for i, e := range g.seq {
		out[i] = Edge{From: e.From, To: e.To, Weight: g.adj[e.From][e.To]}
	}
	return out
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.seq) }

// Equal reports whether g and other contain the same nodes, edges and
// weights in the same iteration order.
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	if !slices.Equal(g.order, other.order) {
		return false
	}
	return slices.Equal(g.Edges(), other.Edges())
}
