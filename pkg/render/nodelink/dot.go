package nodelink

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/nodetraversal/pkg/graph"
	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// DefaultTitle is the diagram caption used when Options.Title is empty.
const DefaultTitle = "Dijkstra's Algorithm Visualization"

// Edge colors.
const (
	ColorTree  = "red"
	ColorOther = "gray"
)

// Options configures diagram generation.
type Options struct {
	// Title is drawn above the diagram. Defaults to DefaultTitle.
	Title string
	// NoLegend omits the color legend.
	NoLegend bool
	// Engine is written into the DOT source so external Graphviz tools pick
	// the same layout. Defaults to EngineNeato.
	Engine Engine
}

// ToDOT converts g into DOT source, coloring each edge by whether it is a
// shortest-path tree edge under dist. dist should come from
// [traverse.Dijkstra]; any distances work, but only Dijkstra's describe a
// tree. Nodes and edges are emitted in graph order.
func ToDOT(g *graph.Graph, dist *traverse.Distances, opts Options) string {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Engine == "" {
		opts.Engine = EngineNeato
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", opts.Engine)
	fmt.Fprintf(&buf, "  label=\"%s\";\n", escapeLabel(opts.Title))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  fontsize=18;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=skyblue, fontcolor=black, fontsize=10, width=0.5, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=2, fontsize=9, arrowsize=0.8];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		if dist != nil && n == dist.Start {
			fmt.Fprintf(&buf, "  %d [label=\"%d\", peripheries=2];\n", n, n)
			continue
		}
		fmt.Fprintf(&buf, "  %d [label=\"%d\"];\n", n, n)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -> %d [label=\"%d\", color=%s];\n", e.From, e.To, e.Weight, edgeColor(e, dist))
	}

	if !opts.NoLegend {
		buf.WriteString("\n")
		buf.WriteString(legend)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// escapeLabel makes s safe inside a double-quoted DOT string. Quotes and
// backslashes are escaped, a newline becomes Graphviz's centered line break
// and other control characters become spaces.
func escapeLabel(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func edgeColor(e graph.Edge, dist *traverse.Distances) string {
	if dist != nil && dist.OnTree(e) {
		return ColorTree
	}
	return ColorOther
}

const legend = `  legend [shape=plaintext, style="", fixedsize=false, fontsize=10, label=<
    <table border="1" cellborder="0" cellspacing="4" bgcolor="white">
      <tr><td><font color="red">&#9472;&#9472;&#9472;</font></td><td align="left">Shortest Path</td></tr>
      <tr><td><font color="gray">&#9472;&#9472;&#9472;</font></td><td align="left">Other Paths</td></tr>
    </table>
  >];
`
