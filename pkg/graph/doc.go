// Package graph provides the weighted directed graph used by the traversal engine.
//
// # Model
//
// A [Graph] is an adjacency mapping from a source node to its destinations and
// edge weights. Node identifiers are integers ([NodeID]) and weights are
// non-negative integers. There are no multi-edges: adding an edge for a
// (source, destination) pair that already exists overwrites its weight.
//
// # Ordering
//
// Iteration is deterministic and follows insertion order:
//
//   - [Graph.Nodes] lists nodes by first appearance (for each edge the source
//     is registered before the destination).
//   - [Graph.Neighbors] lists outgoing edges in the order their destinations
//     were first added. Overwriting a weight keeps the original position.
//
// Traversal algorithms break ties by this order, so two graphs built from the
// same edge sequence always produce the same results.
//
// # Usage
//
//	g := graph.New()
//	g.AddEdge(1, 2, 5)
//	g.AddEdge(2, 3, 3)
//
//	for _, e := range g.Neighbors(1) {
//	    fmt.Println(e.From, "->", e.To, e.Weight)
//	}
//
// A Graph is built once by a loader (see package io) and treated as immutable
// afterwards. It is not safe for concurrent mutation.
package graph
