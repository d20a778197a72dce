package traverse

import "github.com/matzehuels/nodetraversal/pkg/graph"

// Dijkstra computes shortest distances from start.
//
// Each round scans all unvisited nodes in graph order and settles the one
// with the smallest tentative distance (the first one wins ties, and
// unreachable nodes are settled once only +Inf remains). Its outgoing edges
// are relaxed and the loop repeats until every node is settled. There is no
// priority queue: the cost is O(V²), which suits small graphs only.
func Dijkstra(g *graph.Graph, start graph.NodeID) (*Distances, error) {
	d, err := newDistances(g, start)
	if err != nil {
		return nil, err
	}

	nodes := d.order
	visited := make(map[graph.NodeID]bool, len(nodes))
	for len(visited) < len(nodes) {
		cur, found := graph.NodeID(0), false
		for _, n := range nodes {
			if visited[n] {
				continue
			}
			if !found || d.dist[n] < d.dist[cur] {
				cur, found = n, true
			}
		}
		visited[cur] = true

		for _, e := range g.Neighbors(cur) {
			if nd := d.dist[cur] + float64(e.Weight); nd < d.dist[e.To] {
				d.dist[e.To] = nd
			}
		}
	}
	return d, nil
}
