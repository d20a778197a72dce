package traverse

import "github.com/matzehuels/nodetraversal/pkg/graph"

// BFS explores the graph in FIFO order from start and relaxes edge weights
// along the way.
//
// A node is marked visited when it is dequeued. Each of its neighbors that
// is not yet visited is enqueued (again, if already queued) and its distance
// lowered to dist[cur]+w when that is smaller. Settled nodes are never
// revisited, so the result is only guaranteed shortest when all weights are
// equal.
func BFS(g *graph.Graph, start graph.NodeID) (*Distances, error) {
	d, err := newDistances(g, start)
	if err != nil {
		return nil, err
	}

	visited := make(map[graph.NodeID]bool, len(d.order))
	queue := []graph.NodeID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited[cur] = true

		for _, e := range g.Neighbors(cur) {
			if visited[e.To] {
				continue
			}
			queue = append(queue, e.To)
			if nd := d.dist[cur] + float64(e.Weight); nd < d.dist[e.To] {
				d.dist[e.To] = nd
			}
		}
	}
	return d, nil
}
