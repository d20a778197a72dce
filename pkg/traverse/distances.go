package traverse

import (
	"math"
	"slices"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/graph"
)

// Distances maps every node of a graph to its distance from Start.
// Iteration follows graph node order.
type Distances struct {
	Start graph.NodeID
	order []graph.NodeID
	dist  map[graph.NodeID]float64
}

// newDistances validates the inputs and returns a map with every node at
// +Inf and start at 0.
func newDistances(g *graph.Graph, start graph.NodeID) (*Distances, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasNode(start) {
		return nil, errs.Wrap(errs.ErrCodeNodeNotFound, ErrStartNotFound, "node %d", start)
	}
	order := g.Nodes()
	d := &Distances{
		Start: start,
		order: order,
		dist:  make(map[graph.NodeID]float64, len(order)),
	}
	for _, n := range order {
		d.dist[n] = math.Inf(1)
	}
	d.dist[start] = 0
	return d, nil
}

// Get returns the distance to n and whether n is covered.
func (d *Distances) Get(n graph.NodeID) (float64, bool) {
	v, ok := d.dist[n]
	return v, ok
}

// Reachable reports whether n has a finite distance.
func (d *Distances) Reachable(n graph.NodeID) bool {
	v, ok := d.dist[n]
	return ok && !math.IsInf(v, 1)
}

// Nodes returns the covered nodes in graph order.
func (d *Distances) Nodes() []graph.NodeID { return slices.Clone(d.order) }

// Len returns the number of covered nodes.
func (d *Distances) Len() int { return len(d.order) }

// Map returns a copy of the distances keyed by node.
func (d *Distances) Map() map[graph.NodeID]float64 {
	out := make(map[graph.NodeID]float64, len(d.dist))
	for k, v := range d.dist {
		out[k] = v
	}
	return out
}

// OnTree reports whether e's weight equals the distance delta across it,
// i.e. whether e is a shortest-path tree edge under these distances.
// Edges touching unreachable nodes are never on the tree.
func (d *Distances) OnTree(e graph.Edge) bool {
	du, okU := d.dist[e.From]
	dv, okV := d.dist[e.To]
	if !okU || !okV {
		return false
	}
	return float64(e.Weight) == dv-du
}
