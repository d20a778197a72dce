// Package traverse computes single-source distances over a [graph.Graph]
// with three strategies.
//
// # Algorithms
//
//   - [Dijkstra]: minimum-first selection by linear scan over all unvisited
//     nodes (no priority queue), O(V²). Produces true shortest distances for
//     non-negative weights.
//   - [BFS]: FIFO exploration. Each dequeued node relaxes its unvisited
//     neighbors and enqueues them. Nodes are marked visited on dequeue, so a
//     node may be queued more than once.
//   - [DFS]: depth-first exploration with an explicit stack. A neighbor's
//     distance is assigned on first discovery and never revised.
//
// BFS and DFS apply edge weights but do not revisit settled nodes, so on
// graphs with unequal weights they can report distances larger than the
// shortest ones. [Violations] lists the edges where that happened. The
// behavior is kept as is: the three strategies are meant to be compared.
//
// # Results
//
// Every algorithm returns a [Distances] covering every node of the graph in
// graph order. Unreachable nodes keep +Inf. Ties between equal candidates are
// broken by graph insertion order, so results are deterministic.
//
// # Errors
//
// A nil graph yields [ErrGraphNil]. A start node that is not part of the
// graph yields [ErrStartNotFound], coded as NODE_NOT_FOUND.
package traverse
