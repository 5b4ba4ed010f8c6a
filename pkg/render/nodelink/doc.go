// Package nodelink renders a family tree as a Graphviz node-link diagram.
//
// # Overview
//
// Instead of the kintree layout engine, Graphviz dot positions the people.
// Every person is a rounded box. A couple is joined through a small union
// point by dashed spousal edges, and solid edges run from the union (or a
// single parent) to each child.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include lifespan and clan
//   - Horizontal: left-to-right ranks instead of top-to-bottom
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
