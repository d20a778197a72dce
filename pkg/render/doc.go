// Package render holds the visualization backends for traversal results.
//
// The [nodelink] subpackage draws the graph as a node-link diagram with
// Graphviz, marking Dijkstra shortest-path tree edges in red.
package render
