package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/graph"
)

// edgePattern matches a single edge record. Only a prefix match is needed:
// anything after the closing "];" is ignored.
var edgePattern = regexp.MustCompile(`^\s*(\d+)\s*->\s*(\d+)\s*\[label="(\d+)"\];`)

// ReadOptions controls edge-list parsing.
type ReadOptions struct {
	// OnSkip is called for each non-blank line that is not an edge record.
	// lineNo is 1-based. May be nil.
	OnSkip func(lineNo int, text string)
}

// ReadDOT parses a DOT-like edge list from r.
//
// Every line matching "<src> -> <dst> [label=\"<weight>\"];" becomes an edge.
// Non-matching lines are skipped, never reported as errors. Numbers that do
// not fit in an int are treated as non-matching. Lines have no length limit.
// ReadDOT only fails when r itself returns an error. It does not close r.
func ReadDOT(r io.Reader, opts ReadOptions) (*graph.Graph, error) {
	g := graph.New()
	br := bufio.NewReader(r)

	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read line %d: %w", lineNo+1, err)
		}
		if line == "" && err == io.EOF {
			return g, nil
		}
		lineNo++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		if e, ok := parseEdge(line); ok {
			g.AddEdge(e.From, e.To, e.Weight)
		} else if opts.OnSkip != nil && strings.TrimSpace(line) != "" {
			opts.OnSkip(lineNo, line)
		}
		if err == io.EOF {
			return g, nil
		}
	}
}

func parseEdge(line string) (graph.Edge, bool) {
	m := edgePattern.FindStringSubmatch(line)
	if m == nil {
		return graph.Edge{}, false
	}
	var vals [3]int
	for i := range vals {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return graph.Edge{}, false
		}
		vals[i] = v
	}
	return graph.Edge{From: graph.NodeID(vals[0]), To: graph.NodeID(vals[1]), Weight: vals[2]}, true
}

// ImportDOT reads the edge-list file at path.
//
// A missing file yields an error coded [errs.ErrCodeFileNotFound]; other
// open failures are wrapped with the path. Malformed lines never fail.
func ImportDOT(path string, opts ReadOptions) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDOT(f, opts)
}

// ReadJSON decodes a JSON edge list from r.
//
// Unlike [ReadDOT], ReadJSON is strict: malformed JSON and negative weights
// are errors. It does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := graph.New()
	for _, n := range data.Nodes {
		g.AddNode(graph.NodeID(n))
	}
	for _, e := range data.Edges {
		if e.Weight < 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "edge %d->%d: negative weight %d", e.From, e.To, e.Weight)
		}
		g.AddEdge(graph.NodeID(e.From), graph.NodeID(e.To), e.Weight)
	}
	return g, nil
}

// ImportJSON reads the JSON edge-list file at path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// Import reads path, choosing JSON for a ".json" extension and the edge-list
// reader for anything else.
func Import(path string, opts ReadOptions) (*graph.Graph, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportJSON(path)
	}
	return ImportDOT(path, opts)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
