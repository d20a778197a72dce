// Package nodelink renders a weighted graph as a node-link diagram.
//
// # Overview
//
// [ToDOT] turns a [graph.Graph] and the Dijkstra distances computed over it
// into Graphviz DOT source. Nodes are sky-blue circles labelled with their
// id; every edge is labelled with its weight and colored red when it lies on
// the shortest-path tree (its weight equals the distance delta across it) or
// gray otherwise. A legend node explains the two colors.
//
// # Usage
//
//	d, _ := traverse.Dijkstra(g, 1)
//	dot := nodelink.ToDOT(g, d, nodelink.Options{})
//	svg, err := nodelink.Render(ctx, dot, nodelink.FormatSVG, nodelink.EngineNeato)
//
// # Layout Engines
//
// The default engine is neato, a spring model that places connected nodes
// close together. fdp and sfdp are alternative force-directed engines; dot,
// circo and twopi produce hierarchical, circular and radial layouts.
//
// # Dependencies
//
// Rendering runs in process through [github.com/goccy/go-graphviz], which
// embeds Graphviz as WebAssembly. No system Graphviz install is needed.
package nodelink
