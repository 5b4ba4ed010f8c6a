package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds lifespan and clan lines to node labels.
	// When false, only the display name is shown.
	Detailed bool
	// Horizontal lays generations out left to right.
	Horizontal bool
}

// ToDOT converts a layout document to Graphviz DOT format. Only the unit
// structure and cards are used; positions are left to Graphviz.
func ToDOT(l tree.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Horizontal {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, c := range l.Cards {
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(fmtAttrs(c, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, u := range l.Units {
		if len(u.PersonIDs) == 2 {
			union := unionID(u.ID)
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.08, label=\"\"];\n", union)
			fmt.Fprintf(&buf, "  { rank=same; %q; %q; %q; }\n", u.PersonIDs[0], union, u.PersonIDs[1])
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", u.PersonIDs[0], union)
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", union, u.PersonIDs[1])
		}
	}

	couples := make(map[string]bool, len(l.Units))
	for _, u := range l.Units {
		couples[u.ID] = len(u.PersonIDs) == 2
	}
	for _, e := range l.Edges {
		if e.Kind != tree.EdgeParent {
			continue
		}
		from := e.From
		if couples[from] {
			from = unionID(from)
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", from, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func unionID(unit string) string { return "union:" + unit }

func fmtLabel(c tree.Card, detailed bool) string {
	label := c.Label
	if label == "" {
		label = c.ID
	}
	if !detailed {
		return label
	}

	parts := []string{label}
	if c.Lifespan != "" {
		parts = append(parts, c.Lifespan)
	}
	if c.Clan != "" {
		parts = append(parts, "clan: "+c.Clan)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(c tree.Card, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, detailed))}
	switch c.Gender {
	case "MALE":
		attrs = append(attrs, `color="#2b6cb0"`)
	case "FEMALE":
		attrs = append(attrs, `color="#c53030"`)
	}
	if !c.IsAlive {
		attrs = append(attrs, "fillcolor=\"#eeeeee\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
