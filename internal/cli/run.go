package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodetraversal/pkg/config"
	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	pkgio "github.com/matzehuels/nodetraversal/pkg/io"
	"github.com/matzehuels/nodetraversal/pkg/pipeline"
	"github.com/matzehuels/nodetraversal/pkg/report"
)

// runOpts holds the flags specific to the run command.
type runOpts struct {
	settings
	json     bool   // print the report as JSON
	noRender bool   // skip the diagram
	export   string // write the parsed graph here (.json or edge list)
}

// runCommand creates the run command: report distances and write the diagram.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Compute distances from a start node and draw the graph",
		Long: `Run loads an edge-list graph, prints the distances from the start node for each
selected algorithm (Dijkstra, BFS, DFS) and writes a diagram with the Dijkstra
shortest-path tree in red.

Lines of the form  A -> B [label="W"];  are edges; every other line is skipped.`,
		Example: `  nodetraversal run 10nodegraph.dot
  nodetraversal run graph.dot --start 3 --algorithms dijkstra,bfs --open
  nodetraversal run graph.json --json --no-render
  nodetraversal run graph.dot --no-render --export graph.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolve(cmd, args, &opts.settings)
			if err != nil {
				return err
			}
			if opts.export != "" && filepath.Clean(opts.export) == filepath.Clean(cfg.Input) {
				return errs.New(errs.ErrCodeInvalidInput, "--export would overwrite the input %s", cfg.Input)
			}
			return c.runRun(cmd, cfg, opts)
		},
	}

	opts.addStartFlag(cmd)
	opts.addAlgorithmsFlag(cmd)
	opts.addRenderFlags(cmd)
	opts.addLayoutFlag(cmd)
	opts.addCacheFlag(cmd)
	opts.addPickFlag(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&opts.noRender, "no-render", false, "print the report only")
	cmd.Flags().StringVar(&opts.export, "export", "", "write the parsed graph to this file (.json or edge list)")

	registerCompletions(cmd)
	return cmd
}

func (c *CLI) runRun(cmd *cobra.Command, cfg config.Config, opts runOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(cfg.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipelineOptions(cfg, opts.title)
	popts.NoRender = opts.noRender
	popts.Logger = logger

	if opts.pick {
		ok, err := pickStart(cmd, runner, &popts)
		if err != nil || !ok {
			return err
		}
	}

	result, err := execute(ctx, cmd, runner, popts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		err = report.JSON(out, result.Runs)
	} else {
		err = report.Text(out, result.Runs)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if opts.export != "" {
		if err := exportGraph(cmd, result, opts.export); err != nil {
			return err
		}
	}
	if opts.noRender {
		return nil
	}
	return saveDiagram(cmd, cfg, result)
}

// execute runs the pipeline behind a spinner on the error stream.
func execute(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Computing distances...").Start()
	defer spin.Stop()
	return runner.Execute(ctx, opts)
}

// exportGraph writes the loaded graph, without skipped lines, to path.
func exportGraph(cmd *cobra.Command, result *pipeline.Result, path string) error {
	if err := pkgio.Export(result.Graph, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	newProgress(loggerFromContext(cmd.Context())).done("Exported " + path)
	printSuccess(cmd.ErrOrStderr(), "Graph exported")
	printFile(cmd.ErrOrStderr(), path)
	return nil
}

// saveDiagram writes the rendered artifact and optionally opens it.
func saveDiagram(cmd *cobra.Command, cfg config.Config, result *pipeline.Result) error {
	prog := newProgress(loggerFromContext(cmd.Context()))
	path := outputPath(cfg)
	if err := writeArtifact(path, result.Artifact); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	prog.done("Wrote " + path)

	errOut := cmd.ErrOrStderr()
	printSuccess(errOut, "Diagram written")
	printFile(errOut, path)
	printStats(errOut, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	if cfg.Open {
		browser.Stdout = errOut
		if err := openFile(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	return nil
}
