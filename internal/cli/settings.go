package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodetraversal/pkg/config"
	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/graph"
	"github.com/matzehuels/nodetraversal/pkg/pipeline"
	"github.com/matzehuels/nodetraversal/pkg/render/nodelink"
	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// settings holds flag values shared by run, render and serve. A value only
// overrides the config file when its flag was set on the command line.
type settings struct {
	start      int
	algorithms []string
	format     string
	layout     string
	output     string
	title      string
	open       bool
	noCache    bool
	pick       bool
	addr       string
}

func (s *settings) addStartFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&s.start, "start", "s", config.DefaultStart, "start node id")
}

func (s *settings) addAlgorithmsFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.algorithms, "algorithms", "a", nil,
		"algorithms to run: "+strings.Join(traverse.Names(), ", ")+" (default all)")
}

func (s *settings) addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.output, "output", "o", "", "diagram file (default <input>.<format>)")
	cmd.Flags().StringVarP(&s.format, "format", "f", string(nodelink.FormatSVG), "diagram format: svg, png, dot")
	cmd.Flags().StringVar(&s.title, "title", "", "diagram caption (default \""+nodelink.DefaultTitle+"\")")
	cmd.Flags().BoolVar(&s.open, "open", false, "open the diagram in the system viewer")
}

func (s *settings) addLayoutFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.layout, "layout", "l", string(nodelink.EngineNeato),
		"layout engine: neato, fdp, sfdp, dot, circo, twopi")
}

func (s *settings) addPickFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.pick, "pick", false, "choose the start node interactively")
}

func (s *settings) addCacheFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.noCache, "no-cache", false, "do not read or write the render cache")
}

// resolve loads the config file and applies args and changed flags on top.
func (c *CLI) resolve(cmd *cobra.Command, args []string, s *settings) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if cfg.Source != "" {
		loggerFromContext(cmd.Context()).Debug("loaded config", "file", cfg.Source)
	}

	if len(args) > 0 {
		cfg.Input = args[0]
	}
	f := cmd.Flags()
	if f.Changed("start") {
		cfg.Start = s.start
	}
	if f.Changed("algorithms") {
		cfg.Algorithms = s.algorithms
	}
	if f.Changed("format") {
		cfg.Format = s.format
	}
	if f.Changed("layout") {
		cfg.Layout = s.layout
	}
	if f.Changed("output") {
		cfg.Output = s.output
	}
	if f.Changed("open") {
		cfg.Open = s.open
	}
	if f.Changed("no-cache") {
		cfg.NoCache = s.noCache
	}
	if f.Changed("addr") {
		cfg.Serve.Addr = s.addr
	}

	if cfg.Input == "" {
		return cfg, errs.New(errs.ErrCodeInvalidInput,
			"no input file: pass one as an argument or set input in %s", config.DefaultFile)
	}
	return cfg, cfg.Validate()
}

// pipelineOptions converts resolved settings into pipeline options.
func pipelineOptions(cfg config.Config, title string) pipeline.Options {
	return pipeline.Options{
		Input:      cfg.Input,
		Start:      graph.NodeID(cfg.Start),
		Algorithms: cfg.Algorithms,
		Format:     cfg.Format,
		Layout:     cfg.Layout,
		Title:      title,
	}
}

// outputPath returns cfg.Output, or the input path with its extension
// replaced by the lowercase format name. A derived path never names the
// input itself, even on case-insensitive file systems.
func outputPath(cfg config.Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	format, err := nodelink.ParseFormat(cfg.Format)
	if err != nil {
		format = nodelink.FormatSVG
	}
	base := strings.TrimSuffix(cfg.Input, filepath.Ext(cfg.Input))
	if p := base + "." + string(format); !strings.EqualFold(p, cfg.Input) {
		return p
	}
	return base + "_tree." + string(format)
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// openFile shows path in the system viewer. Tests replace it.
var openFile = browser.OpenFile
