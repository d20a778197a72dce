package graph

import "fmt"

// NodeID identifies a vertex.
type NodeID int

// String returns the decimal form of the id.
func (n NodeID) String() string { return fmt.Sprintf("%d", int(n)) }

// Edge is a directed, weighted connection between two nodes.
type Edge struct {
	From   NodeID
	To     NodeID
	Weight int
}

// String formats the edge in edge-list notation, e.g. "1 -> 2 (5)".
func (e Edge) String() string {
	return fmt.Sprintf("%d -> %d (%d)", e.From, e.To, e.Weight)
}
