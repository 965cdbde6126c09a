package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

// Format names accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the number of filled metadata fields to dependency
	// labels. When false, only name and version are shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Manifests are drawn as grey boxes and dependencies as white rounded boxes.
// Manifests without dependencies still appear, unconnected.
func ToDOT(s soup.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	deps := make(map[string]soup.Dependency)
	var order []string
	for _, path := range s.Paths() {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, style=filled, fillcolor=lightgrey];\n", manifestID(path), path)
		for _, d := range s[path].Items() {
			id := depID(d)
			if _, ok := deps[id]; !ok {
				deps[id] = d
				order = append(order, id)
			}
		}
	}

	buf.WriteString("\n")
	for _, id := range order {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmtLabel(deps[id], opts.Detailed))
	}

	buf.WriteString("\n")
	for _, path := range s.Paths() {
		for _, d := range s[path].Items() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", manifestID(path), depID(d))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func manifestID(path string) string { return "m:" + path }

func depID(d soup.Dependency) string { return "d:" + d.Name + "@" + d.Version }

func fmtLabel(d soup.Dependency, detailed bool) string {
	label := d.Name + "\n" + d.Version
	if !detailed || len(d.Meta) == 0 {
		return label
	}
	return fmt.Sprintf("%s\nmeta: %d/%d", label, d.Meta.Filled(), len(d.Meta))
}

// Render converts a snapshot to the named format.
func Render(ctx context.Context, s soup.Snapshot, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := ToDOT(s, opts)
	switch format {
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return RenderPNG(ctx, dot)
	}
	return []byte(dot), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element so the drawing scales with its
// container and starts at the origin.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
