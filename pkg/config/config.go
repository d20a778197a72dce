// Package config loads nodetraversal settings from a TOML file.
//
// Settings are resolved in three layers: built-in defaults, then the config
// file, then command-line flags. This package handles the first two; the CLI
// applies flags on top of the returned [Config].
//
// # File Format
//
//	input = "graphs/10nodegraph.dot"
//	start = 1
//	algorithms = ["dijkstra", "bfs", "dfs"]
//	format = "svg"
//	layout = "neato"
//	output = "out/graph.svg"
//	open = false
//	no_cache = false
//
//	[serve]
//	addr = "127.0.0.1:8080"
//
// All keys are optional. Unknown keys are rejected so typos surface early.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/render/nodelink"
	"github.com/matzehuels/nodetraversal/pkg/traverse"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = "nodetraversal.toml"

// Defaults.
const (
	DefaultStart = 1
	DefaultAddr  = "127.0.0.1:8080"
)

// Config holds every setting that can come from a config file.
type Config struct {
	Input      string   `toml:"input"`
	Start      int      `toml:"start"`
	Algorithms []string `toml:"algorithms"`
	Format     string   `toml:"format"`
	Layout     string   `toml:"layout"`
	Output     string   `toml:"output"`
	Open       bool     `toml:"open"`
	NoCache    bool     `toml:"no_cache"`
	Serve      Serve    `toml:"serve"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

// Serve configures the HTTP viewer.
type Serve struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Start:      DefaultStart,
		Algorithms: traverse.Names(),
		Format:     string(nodelink.FormatSVG),
		Layout:     string(nodelink.EngineNeato),
		Serve:      Serve{Addr: DefaultAddr},
	}
}

// Load reads the TOML file at path over the defaults.
//
// When path is empty, DefaultFile in the working directory is used if it
// exists; otherwise the defaults are returned unchanged. An explicit path
// that does not exist is an error. Relative input and output paths in the
// file are resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	base := filepath.Dir(path)
	cfg.Input = resolve(base, cfg.Input)
	cfg.Output = resolve(base, cfg.Output)
	cfg.Source = path
	return cfg, cfg.Validate()
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks enumerated values. It does not check that Input exists.
func (c Config) Validate() error {
	if _, err := traverse.Select(c.Algorithms); err != nil {
		return err
	}
	if _, err := nodelink.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := nodelink.ParseEngine(c.Layout); err != nil {
		return err
	}
	return nil
}
