package traverse

import "github.com/matzehuels/nodetraversal/pkg/graph"

// frame is one level of the DFS stack: a node and the index of the next
// outgoing edge to examine.
type frame struct {
	edges []graph.Edge
	next  int
}

// DFS explores the graph depth-first from start.
//
// On the first discovery of a neighbor its distance becomes dist[cur]+w and
// the search descends into it immediately. Distances are never revised
// afterwards, so they reflect the first path found rather than the shortest.
// The stack is explicit, so depth is bounded by memory rather than by the
// goroutine stack; the visit order is the same as a recursive walk.
func DFS(g *graph.Graph, start graph.NodeID) (*Distances, error) {
	d, err := newDistances(g, start)
	if err != nil {
		return nil, err
	}

	visited := map[graph.NodeID]bool{start: true}
	stack := []frame{{edges: g.Neighbors(start)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.edges) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := top.edges[top.next]
		top.next++

		if visited[e.To] {
			continue
		}
		visited[e.To] = true
		d.dist[e.To] = d.dist[e.From] + float64(e.Weight)
		stack = append(stack, frame{edges: g.Neighbors(e.To)})
	}
	return d, nil
}
