package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// renderCommand creates the render command: write the diagram without a report.
func (c *CLI) renderCommand() *cobra.Command {
	var opts settings

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the graph with its shortest-path tree",
		Long: `Render writes the diagram only. Edges on the Dijkstra shortest-path tree from
the start node are red, all others gray.`,
		Example: `  nodetraversal render 10nodegraph.dot -o graph.png -f png
  nodetraversal render graph.dot --layout circo --open`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolve(cmd, args, &opts)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg.NoCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			popts := pipelineOptions(cfg, opts.title)
			popts.Algorithms = []string{traverse.NameDijkstra}
			popts.Logger = loggerFromContext(cmd.Context())

			if opts.pick {
				ok, err := pickStart(cmd, runner, &popts)
				if err != nil || !ok {
					return err
				}
			}

			result, err := execute(cmd.Context(), cmd, runner, popts)
			if err != nil {
				return err
			}
			return saveDiagram(cmd, cfg, result)
		},
	}

	opts.addStartFlag(cmd)
	opts.addRenderFlags(cmd)
	opts.addLayoutFlag(cmd)
	opts.addCacheFlag(cmd)
	opts.addPickFlag(cmd)

	registerCompletions(cmd)
	return cmd
}
