package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/nodetraversal/pkg/io"
	"github.com/matzehuels/nodetraversal/pkg/render/nodelink"
	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// graphExtensions are offered when completing the input file argument.
var graphExtensions = []string{"dot", "gv", "txt", "json"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for nodetraversal.

Besides commands and flags, the scripts complete graph files, the values of
--algorithms, --format and --layout, and the node ids of the given graph for
--start.

  bash        source <(nodetraversal completion bash)
  zsh         nodetraversal completion zsh > "${fpath[1]}/_nodetraversal"
  fish        nodetraversal completion fish | source
  powershell  nodetraversal completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions wires value completion for the graph argument and the
// shared flags cmd defines.
func registerCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeGraphFile

	fixed := map[string][]string{
		"algorithms": traverse.Names(),
		"format":     {string(nodelink.FormatSVG), string(nodelink.FormatPNG), string(nodelink.FormatDOT)},
		"layout": {
			string(nodelink.EngineNeato), string(nodelink.EngineFDP), string(nodelink.EngineSFDP),
			string(nodelink.EngineDot), string(nodelink.EngineCirco), string(nodelink.EngineTwopi),
		},
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		}
	}
	if cmd.Flags().Lookup("start") != nil {
		_ = cmd.RegisterFlagCompletionFunc("start", completeStartNode)
	}
}

func completeGraphFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return graphExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeStartNode offers the node ids of the graph named by the first
// argument, in graph order.
func completeStartNode(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	g, err := pkgio.Import(args[0], pkgio.ReadOptions{})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveError
	}
	ids := make([]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		ids = append(ids, strconv.Itoa(int(n)))
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
