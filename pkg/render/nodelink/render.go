package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/nodetraversal/pkg/errors"
)

// Engine names a Graphviz layout engine.
type Engine string

// Supported layout engines.
const (
	EngineNeato Engine = "neato" // spring model (default)
	EngineFDP   Engine = "fdp"
	EngineSFDP  Engine = "sfdp"
	EngineDot   Engine = "dot"
	EngineCirco Engine = "circo"
	EngineTwopi Engine = "twopi"
)

var engines = map[Engine]graphviz.Layout{
	EngineNeato: graphviz.NEATO,
	EngineFDP:   graphviz.FDP,
	EngineSFDP:  graphviz.SFDP,
	EngineDot:   graphviz.DOT,
	EngineCirco: graphviz.CIRCO,
	EngineTwopi: graphviz.TWOPI,
}

// ParseEngine validates a layout engine name. An empty name selects neato.
func ParseEngine(s string) (Engine, error) {
	if s == "" {
		return EngineNeato, nil
	}
	e := Engine(strings.ToLower(s))
	if _, ok := engines[e]; !ok {
		return "", errs.New(errs.ErrCodeInvalidLayout,
			"invalid layout: %s (must be 'neato', 'fdp', 'sfdp', 'dot', 'circo' or 'twopi')", s)
	}
	return e, nil
}

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatDOT Format = "dot" // DOT source, no layout
)

// ParseFormat validates an output format name. An empty name selects svg.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG, FormatDOT:
		return f, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png' or 'dot')", s)
	}
}

// Render lays out dot with engine and encodes it as format.
// FormatDOT returns the source unchanged without invoking Graphviz.
func Render(ctx context.Context, dot string, format Format, engine Engine) ([]byte, error) {
	if format == FormatDOT {
		return []byte(dot), nil
	}
	layout, ok := engines[engine]
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidLayout, "invalid layout: %s", engine)
	}
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "invalid format: %s", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "render %s", format)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox with
// matching pixel size so the SVG scales cleanly when embedded in HTML.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
