package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/nodetraversal/pkg/graph"
)

type document struct {
	Nodes []int  `json:"nodes,omitempty"`
	Edges []edge `json:"edges"`
}

type edge struct {
	From   int `json:"from"`
	To     int `json:"to"`
	Weight int `json:"weight"`
}

// WriteDOT writes g as a DOT-like edge list that [ReadDOT] can read back.
// Nodes without any edge cannot be expressed in this format and are lost.
func WriteDOT(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "  %d -> %d [label=\"%d\"];\n", e.From, e.To, e.Weight)
	}
	fmt.Fprintln(bw, "}")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportDOT writes g to an edge-list file at path.
func ExportDOT(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDOT(g, f)
}

// WriteJSON encodes g as a JSON edge list. All nodes are listed in the
// "nodes" array in graph order, so isolated nodes and node order survive a
// round trip through [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Nodes: make([]int, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, int(n))
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: int(e.From), To: int(e.To), Weight: e.Weight})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// Export writes g to path, choosing JSON for a ".json" extension and the
// edge-list format for anything else. It mirrors [Import].
func Export(g *graph.Graph, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportJSON(g, path)
	}
	return ExportDOT(g, path)
}
