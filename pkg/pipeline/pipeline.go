// Package pipeline runs the load → traverse → render sequence shared by the
// CLI commands and the HTTP viewer.
//
// # Stages
//
//  1. Load: read the graph file (edge list or JSON) into a [graph.Graph]
//  2. Traverse: run the selected algorithms from the start node
//  3. Render: draw the graph with Dijkstra tree edges highlighted
//
// Each stage can be run on its own or through [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Input: "10nodegraph.dot", Start: 1}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	report.Text(os.Stdout, result.Runs)
//	os.WriteFile("graph.svg", result.Artifact, 0o644)
//
// Rendering always uses Dijkstra distances. When Dijkstra is not among the
// selected algorithms it is still computed for the diagram but not reported.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/graph"
	"github.com/matzehuels/nodetraversal/pkg/render/nodelink"
	"github.com/matzehuels/nodetraversal/pkg/report"
	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization so runs can be described in files.
type Options struct {
	// Input is the graph file to load.
	Input string `json:"input"`
	// Start is the source node. There is no default: 0 is a valid node id.
	Start graph.NodeID `json:"start"`
	// Algorithms selects strategies by name; empty means all.
	Algorithms []string `json:"algorithms,omitempty"`

	// Render options
	Format   string `json:"format,omitempty"` // svg (default), png, dot
	Layout   string `json:"layout,omitempty"` // neato (default), fdp, sfdp, dot, circo, twopi
	Title    string `json:"title,omitempty"`
	NoRender bool   `json:"no_render,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"` // ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	algorithms []traverse.Algorithm
	format     nodelink.Format
	engine     nodelink.Engine
	validated  bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded graph.
	Graph *graph.Graph
	// Runs holds one entry per selected algorithm, in report order.
	Runs []report.Run
	// Dijkstra is the distance map used for rendering.
	Dijkstra *traverse.Distances
	// DOT is the diagram source; empty when rendering was skipped.
	DOT string
	// Artifact is the rendered diagram in Options.Format.
	Artifact []byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	SkippedLines int
	LoadTime     time.Duration
	TraverseTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // whether the artifact came from cache
}

// ValidateAndSetDefaults checks the options and fills in render defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errs.New(errs.ErrCodeInvalidInput, "no input file given")
	}
	if err := o.validateTraversal(); err != nil {
		return err
	}
	if err := o.validateRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) validateTraversal() error {
	algs, err := traverse.Select(o.Algorithms)
	if err != nil {
		return err
	}
	o.algorithms = algs
	return nil
}

func (o *Options) validateRender() error {
	format, err := nodelink.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	engine, err := nodelink.ParseEngine(o.Layout)
	if err != nil {
		return err
	}
	o.format, o.engine = format, engine
	o.Format, o.Layout = string(format), string(engine)
	return nil
}

// SelectedAlgorithms returns the resolved algorithms after validation.
func (o *Options) SelectedAlgorithms() []traverse.Algorithm { return o.algorithms }
