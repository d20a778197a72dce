// Package pkg provides the libraries behind the nodetraversal CLI.
//
// # Overview
//
// nodetraversal loads a weighted directed graph, computes distances from a
// start node with three strategies and draws the result. The pkg directory is
// organized as:
//
//  1. [graph] - Ordered adjacency-map digraph with integer weights
//  2. [io] - Edge-list (DOT subset) and JSON import/export
//  3. [traverse] - Dijkstra, BFS and DFS distance computations
//  4. [report] - Text and JSON distance reports
//  5. [render] - Graphviz node-link diagrams with the shortest-path tree
//  6. [pipeline] - Orchestration (load → traverse → render)
//
// Supporting packages: [cache] (render cache), [config] (TOML settings),
// [errors] (coded errors), [observability] (hooks) and [buildinfo].
//
// # Architecture
//
//	edge-list or JSON file
//	         ↓
//	    [io] package (parse, skipping non-edge lines)
//	         ↓
//	    [graph] package (nodes and edges in first-seen order)
//	         ↓
//	    [traverse] package (Dijkstra, BFS, DFS from the start node)
//	         ↓
//	    [report] + [render/nodelink] (console report, SVG/PNG/DOT diagram)
//
// # Quick Start
//
//	g, err := io.ImportDOT("10nodegraph.dot", io.ReadOptions{})
//	if err != nil {
//	    return err
//	}
//	dist, err := traverse.Dijkstra(g, 1)
//	if err != nil {
//	    return err
//	}
//	report.Text(os.Stdout, []report.Run{{Algorithm: traverse.All()[0], Distances: dist}})
//
// Only BFS and DFS results may differ from Dijkstra's: they assign distances
// in visit order and are not shortest paths on weighted graphs.
package pkg
