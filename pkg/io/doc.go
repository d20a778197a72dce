// Package io imports and exports weighted graphs as DOT-like edge lists or JSON.
//
// # Edge-list format
//
// The primary input format is a DOT-like document with one edge per line:
//
//	digraph G {
//	  1 -> 2 [label="5"];
//	  2 -> 3 [label="3"];
//	}
//
// Each line is matched against the pattern
//
//	<int> -> <int> [label="<int>"];
//
// with optional whitespace around the tokens. The three integers are the
// source, destination and weight of an edge.
//
// # Lenient Parsing
//
// Lines that do not match the pattern are ignored. This covers the digraph
// header, closing braces, comments, attribute statements and malformed
// records alike. The reader is a permissive extractor, not a DOT validator.
// Callers that want to know what was dropped can pass
// [ReadOptions.OnSkip], which receives every skipped non-blank line.
//
// # JSON Format
//
// [ReadJSON] and [WriteJSON] use an edge-list object:
//
//	{
//	  "edges": [
//	    {"from": 1, "to": 2, "weight": 5},
//	    {"from": 2, "to": 3, "weight": 3}
//	  ]
//	}
//
// An optional "nodes" array fixes the node order and carries isolated nodes
// that have no edges. Nodes listed there are registered before any edge.
//
// # Round Trips
//
// [WriteDOT] and [WriteJSON] emit edges in insertion order, so reading the
// output back yields a graph that is [graph.Graph.Equal] to the original.
// The edge-list format cannot carry isolated nodes; JSON can.
package io
