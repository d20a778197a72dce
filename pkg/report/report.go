package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/nodetraversal/pkg/graph"
	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// Run pairs an algorithm with the distances it produced.
type Run struct {
	Algorithm traverse.Algorithm
	Distances *traverse.Distances
}

// FormatDistance renders d as an integer when finite and "inf" otherwise.
func FormatDistance(d float64) string {
	if math.IsInf(d, 1) {
		return "inf"
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// Text writes the console report for runs to w, in the order given.
func Text(w io.Writer, runs []Run) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))

	bw := bufio.NewWriter(w)
	for i, run := range runs {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, heading.Render(run.Algorithm.Title+":"))
		d := run.Distances
		for _, n := range d.Nodes() {
			dist, _ := d.Get(n)
			fmt.Fprintf(bw, "Shortest Distance from Node %d to Node %d: %s\n", d.Start, n, FormatDistance(dist))
		}
	}
	return bw.Flush()
}

type jsonReport struct {
	Start   graph.NodeID `json:"start"`
	Results []jsonResult `json:"results"`
}

type jsonResult struct {
	Algorithm string         `json:"algorithm"`
	Title     string         `json:"title"`
	Distances []jsonDistance `json:"distances"`
}

type jsonDistance struct {
	Node     graph.NodeID `json:"node"`
	Distance *float64     `json:"distance"` // null when unreachable
}

// JSON writes runs as an indented JSON document. Unreachable distances are
// encoded as null. The start node is taken from the first run.
func JSON(w io.Writer, runs []Run) error {
	out := jsonReport{Results: make([]jsonResult, 0, len(runs))}
	if len(runs) > 0 {
		out.Start = runs[0].Distances.Start
	}
	for _, run := range runs {
		d := run.Distances
		res := jsonResult{
			Algorithm: run.Algorithm.Name,
			Title:     run.Algorithm.Title,
			Distances: make([]jsonDistance, 0, d.Len()),
		}
		for _, n := range d.Nodes() {
			entry := jsonDistance{Node: n}
			if v, _ := d.Get(n); !math.IsInf(v, 1) {
				entry.Distance = &v
			}
			res.Distances = append(res.Distances, entry)
		}
		out.Results = append(out.Results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
