// Package report formats traversal results for the console.
//
// [Text] writes one section per algorithm run, headed by the algorithm's
// title and listing every node's distance from the start node:
//
//	Dijkstra's Algorithm:
//	Shortest Distance from Node 1 to Node 1: 0
//	Shortest Distance from Node 1 to Node 2: 5
//
//	Breadth-First Search:
//	...
//
// Finite distances print without a fractional part and unreachable nodes
// print "inf". Headings are styled with lipgloss when the writer is a
// terminal and plain otherwise.
//
// [JSON] writes the same data as a machine-readable document.
package report
