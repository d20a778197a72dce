package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodetraversal.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Start != 1 {
		t.Errorf("Start = %d, want 1", cfg.Start)
	}
	if !slices.Equal(cfg.Algorithms, []string{"dijkstra", "bfs", "dfs"}) {
		t.Errorf("Algorithms = %v", cfg.Algorithms)
	}
	if cfg.Format != "svg" || cfg.Layout != "neato" {
		t.Errorf("Format/Layout = %s/%s", cfg.Format, cfg.Layout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input = "graphs/10nodegraph.dot"
start = 3
algorithms = ["bfs"]
layout = "fdp"
output = "/tmp/out.png"
format = "png"

[serve]
addr = ":9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dir := filepath.Dir(path)
	if cfg.Input != filepath.Join(dir, "graphs", "10nodegraph.dot") {
		t.Errorf("Input = %s, want it resolved against %s", cfg.Input, dir)
	}
	if cfg.Output != "/tmp/out.png" {
		t.Errorf("Output = %s, absolute paths should be kept", cfg.Output)
	}
	if cfg.Start != 3 {
		t.Errorf("Start = %d, want 3", cfg.Start)
	}
	if !slices.Equal(cfg.Algorithms, []string{"bfs"}) {
		t.Errorf("Algorithms = %v", cfg.Algorithms)
	}
	if cfg.Layout != "fdp" || cfg.Format != "png" {
		t.Errorf("Layout/Format = %s/%s", cfg.Layout, cfg.Format)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %s", cfg.Serve.Addr)
	}
	if cfg.Source != path {
		t.Errorf("Source = %s, want %s", cfg.Source, path)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, `start = 2`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout != "neato" || cfg.Serve.Addr != DefaultAddr {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errs.Code
	}{
		{"syntax", `start = `, errs.ErrCodeInvalidConfig},
		{"unknown key", `strat = 1`, errs.ErrCodeInvalidConfig},
		{"bad algorithm", `algorithms = ["astar"]`, errs.ErrCodeInvalidAlgorithm},
		{"bad layout", `layout = "spring"`, errs.ErrCodeInvalidLayout},
		{"bad format", `format = "pdf"`, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errs.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadImplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without %s should succeed: %v", DefaultFile, err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
}

func TestLoadImplicitFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte(`input = "g.dot"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input != "g.dot" {
		t.Errorf("Input = %q, want g.dot", cfg.Input)
	}
}
