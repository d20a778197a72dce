package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodetraversal/pkg/config"
	errs "github.com/matzehuels/nodetraversal/pkg/errors"
	"github.com/matzehuels/nodetraversal/pkg/graph"
	pkgio "github.com/matzehuels/nodetraversal/pkg/io"
	"github.com/matzehuels/nodetraversal/pkg/observability"
	"github.com/matzehuels/nodetraversal/pkg/pipeline"
	"github.com/matzehuels/nodetraversal/pkg/render/nodelink"
	"github.com/matzehuels/nodetraversal/pkg/report"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command: an HTTP page with the diagram and
// the distance tables. The graph file is re-read on every request, so edits
// show up on reload.
func (c *CLI) serveCommand() *cobra.Command {
	var opts settings

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Browse the diagram and distance tables in a web page",
		Long: `Serve starts a local HTTP server with one page showing the rendered graph and
a distance table per algorithm. Append ?start=N to change the start node.

Endpoints:
  /                 HTML page
  /graph.svg        diagram
  /graph.dot        DOT source
  /graph.json       parsed graph (nodes and edges)
  /distances.json   distance report
  /metrics.json     request, render and cache counters`,
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

			counters := observability.NewCounters()
			observability.SetPipelineHooks(counters)
			observability.SetCacheHooks(counters)
			observability.SetServerHooks(counters)
			defer observability.Reset()

			v := newViewer(runner, cfg, counters, loggerFromContext(cmd.Context()))
			return v.listenAndServe(cmd.Context(), cmd, cfg.Serve.Addr, cfg.Open)
		},
	}

	opts.addStartFlag(cmd)
	opts.addAlgorithmsFlag(cmd)
	opts.addLayoutFlag(cmd)
	opts.addCacheFlag(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the page in the browser")

	registerCompletions(cmd)
	return cmd
}

// viewer serves one graph file over HTTP.
type viewer struct {
	runner   *pipeline.Runner
	base     pipeline.Options
	counters *observability.Counters
	logger   *log.Logger
}

func newViewer(runner *pipeline.Runner, cfg config.Config, counters *observability.Counters, logger *log.Logger) *viewer {
	base := pipelineOptions(cfg, "")
	base.Logger = logger
	if counters == nil {
		counters = observability.NewCounters()
	}
	return &viewer{runner: runner, base: base, counters: counters, logger: logger}
}

// routes builds the chi router.
func (v *viewer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(v.logRequests)

	r.Get("/", v.handleIndex)
	r.Get("/graph.svg", v.handleDiagram(nodelink.FormatSVG, "image/svg+xml"))
	r.Get("/graph.dot", v.handleDiagram(nodelink.FormatDOT, "text/vnd.graphviz; charset=utf-8"))
	r.Get("/graph.json", v.handleGraph)
	r.Get("/distances.json", v.handleDistances)
	r.Get("/metrics.json", v.handleMetrics)
	return r
}

func (v *viewer) listenAndServe(ctx context.Context, cmd *cobra.Command, addr string, open bool) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:      v.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	url := "http://" + ln.Addr().String() + "/"
	errOut := cmd.ErrOrStderr()
	printSuccess(errOut, "Serving %s", v.base.Input)
	printLink(errOut, "Open", url)
	if open {
		if err := openURL(url); err != nil {
			v.logger.Warn("could not open browser", "err", err)
		}
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ln) }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	v.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// options returns the base options with ?start applied.
func (v *viewer) options(r *http.Request) (pipeline.Options, error) {
	opts := v.base
	if s := r.URL.Query().Get("start"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "invalid start node %q", s)
		}
		opts.Start = graph.NodeID(n)
	}
	return opts, nil
}

func (v *viewer) run(r *http.Request, format nodelink.Format, noRender bool) (*pipeline.Result, error) {
	opts, err := v.options(r)
	if err != nil {
		return nil, err
	}
	opts.Format = string(format)
	opts.NoRender = noRender
	return v.runner.Execute(r.Context(), opts)
}

type pageData struct {
	Input   string
	Start   graph.NodeID
	Layout  string
	Diagram template.HTML
	Tables  []pageTable
}

type pageTable struct {
	Title string
	Rows  []pageRow
}

type pageRow struct {
	Node     graph.NodeID
	Distance string
}

func (v *viewer) handleIndex(w http.ResponseWriter, r *http.Request) {
	result, err := v.run(r, nodelink.FormatSVG, false)
	if err != nil {
		v.writeError(w, err)
		return
	}

	data := pageData{
		Input:  v.base.Input,
		Layout: v.base.Layout,
		// Graphviz output, not user text.
		Diagram: template.HTML(inlineSVG(result.Artifact)),
	}
	for _, run := range result.Runs {
		data.Start = run.Distances.Start
		t := pageTable{Title: run.Algorithm.Title}
		for _, n := range run.Distances.Nodes() {
			d, _ := run.Distances.Get(n)
			t.Rows = append(t.Rows, pageRow{Node: n, Distance: report.FormatDistance(d)})
		}
		data.Tables = append(data.Tables, t)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		v.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "render page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// inlineSVG drops the XML prolog and doctype so the document can be embedded.
func inlineSVG(svg []byte) []byte {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		return svg[i:]
	}
	return svg
}

func (v *viewer) handleDiagram(format nodelink.Format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := v.run(r, format, false)
		if err != nil {
			v.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(result.Artifact)
	}
}

func (v *viewer) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, err := v.runner.Load(r.Context(), v.base)
	if err != nil {
		v.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(g, &buf); err != nil {
		v.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "encode graph"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (v *viewer) handleDistances(w http.ResponseWriter, r *http.Request) {
	result, err := v.run(r, nodelink.FormatSVG, true)
	if err != nil {
		v.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := report.JSON(&buf, result.Runs); err != nil {
		v.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "encode report"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (v *viewer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v.counters.Snapshot()); err != nil {
		v.logger.Debug("encode metrics", "err", err)
	}
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code  errs.Code `json:"code,omitempty"`
	Error string    `json:"error"`
}

func (v *viewer) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		v.logger.Error("request failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(errorResponse{
		Code:  errs.GetCode(err),
		Error: errs.UserMessage(err),
	}); encErr != nil {
		v.logger.Debug("encode error response", "err", encErr)
	}
}

func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidAlgorithm,
		errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidLayout:
		return http.StatusBadRequest
	case errs.ErrCodeNodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// logRequests logs each request at debug level with its status and duration
// and reports it to the server hooks.
func (v *viewer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		observability.Server().OnRequest(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		v.logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// openURL opens url in the default browser. Tests replace it.
var openURL = browser.OpenURL

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Input}} · node {{.Start}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
  header { margin-bottom: 1rem; }
  .meta { color: #666; font-size: 0.9rem; }
  .diagram svg { max-width: 100%; height: auto; }
  .tables { display: flex; flex-wrap: wrap; gap: 2rem; margin-top: 1.5rem; }
  table { border-collapse: collapse; }
  th, td { padding: 0.2rem 0.8rem; border-bottom: 1px solid #ddd; text-align: right; }
  caption { font-weight: bold; text-align: left; padding-bottom: 0.4rem; }
</style>
</head>
<body>
<header>
  <h1>{{.Input}}</h1>
  <div class="meta">start node {{.Start}} · layout {{.Layout}} ·
    <a href="graph.svg?start={{.Start}}">svg</a> ·
    <a href="graph.dot?start={{.Start}}">dot</a> ·
    <a href="distances.json?start={{.Start}}">json</a></div>
  <form method="get"><label>Start node <input name="start" type="number" value="{{.Start}}"></label> <button>Go</button></form>
</header>
<div class="diagram">{{.Diagram}}</div>
<div class="tables">
{{- range .Tables}}
  <table>
    <caption>{{.Title}}</caption>
    <tr><th>Node</th><th>Distance</th></tr>
    {{- range .Rows}}
    <tr><td>{{.Node}}</td><td>{{.Distance}}</td></tr>
    {{- end}}
  </table>
{{- end}}
</div>
</body>
</html>
`))
