package traverse

import "errors"

var (
	// ErrGraphNil is returned when the graph argument is nil.
	ErrGraphNil = errors.New("traverse: graph is nil")

	// ErrStartNotFound is returned when the start node is not a node of the graph.
	ErrStartNotFound = errors.New("traverse: start node not in graph")
)
