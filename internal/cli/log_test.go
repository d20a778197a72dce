package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("loaded graph") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("skipped line") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("skipped line") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("loaded graph", "nodes", 5)

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("line should start with HH:MM:SS.ss: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "nodes=5") {
		t.Errorf("missing key/value pair: %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Wrote graph.svg")

	if !regexp.MustCompile(`Wrote graph\.svg \(\d+(\.\d+)?[a-zµ]*s\)`).MatchString(buf.String()) {
		t.Errorf("done() = %q, want message with elapsed time", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)

	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), custom), custom},
		{"attached to nil context", withLogger(nil, custom), custom},
		{"none attached", context.Background(), log.Default()},
		{"nil context", nil, log.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestRunLogsThroughContext(t *testing.T) {
	setup(t)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"run", "graph.dot", "--format", "dot", "--no-cache"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{"loaded graph", "rendered diagram", "Wrote graph_tree.dot ("} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
	if strings.Contains(logs.String(), "skipped line") {
		t.Error("debug output should be filtered at info level")
	}
}
