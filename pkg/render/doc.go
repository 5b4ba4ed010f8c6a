// Package render provides output rendering for family-tree layouts.
//
// # Overview
//
// This package contains the rendering pipeline that turns a positioned
// [tree.Layout] into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Card-and-connector output formats (in [sink] subpackage)
//   - Visual styles (in [styles] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by the sinks,
// the off-screen canvas and the node-link renderer.
//
//	svg := sink.RenderSVG(doc, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Canvas
//
// [sink.Canvas] is an off-screen drawing surface. It implements the viewport
// Surface interface, so viewport exports capture the full content through it.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the family graph with Graphviz, letting
// dot choose positions instead of the kintree layout engine.
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [tree.Layout]: github.com/matzehuels/kintree/pkg/tree
// [sink]: github.com/matzehuels/kintree/pkg/render/sink
// [sink.Canvas]: github.com/matzehuels/kintree/pkg/render/sink
// [styles]: github.com/matzehuels/kintree/pkg/render/styles
// [nodelink]: github.com/matzehuels/kintree/pkg/render/nodelink
package render
