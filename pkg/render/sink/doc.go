// Package sink renders a [tree.Layout] to output formats.
//
// # Formats
//
//   - [RenderSVG]: vector image, the base for every other format
//   - [RenderPNG]: raster image via rsvg-convert
//   - [RenderPDF]: single-page document via rsvg-convert
//   - [RenderJSON]: the layout document plus per-person visual weights
//
// All renderers take functional options:
//
//	svg := sink.RenderSVG(doc,
//	    sink.WithStyle(styles.Clan{}),
//	    sink.WithWeights(filter.Weights(people, f)),
//	)
//
// By default the SVG viewBox is the layout bounds plus [DefaultPadding]. With
// [WithViewport] the content is drawn through a viewport transform into a
// fixed-size frame instead, which is what [Canvas] captures.
//
// [tree.Layout]: github.com/matzehuels/kintree/pkg/tree
package sink
