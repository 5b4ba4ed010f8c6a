package pipeline

import (
	"context"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
	"github.com/matzehuels/kintree/pkg/render/sink"
	"github.com/matzehuels/kintree/pkg/render/styles"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Render generates the requested artifacts from a layout document. people
// feeds the filter weights and may be nil when opts.Filter is nil.
func Render(ctx context.Context, l tree.Layout, people []person.Person, opts Options) (map[string][]byte, error) {
	if opts.VizType == VizNodelink {
		return renderNodelink(ctx, l, opts)
	}
	return renderTree(ctx, l, people, opts)
}

func renderTree(ctx context.Context, l tree.Layout, people []person.Person, opts Options) (map[string][]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "style")
	}

	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	var weights map[string]filter.Weight
	if opts.Filter != nil {
		weights = filter.Weights(people, *opts.Filter)
		svgOpts = append(svgOpts, sink.WithWeights(weights))
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONStyle(opts.Style)}
			if weights != nil {
				jsonOpts = append(jsonOpts, sink.WithJSONWeights(weights))
			}
			data, err = sink.RenderJSON(l, jsonOpts...)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, dotOptions(l, opts)))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

func renderNodelink(ctx context.Context, l tree.Layout, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(l, dotOptions(l, opts))

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONStyle(opts.Style))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

func dotOptions(l tree.Layout, opts Options) nodelink.Options {
	return nodelink.Options{
		Detailed:   opts.Detailed,
		Horizontal: l.Mode == tree.ModeHorizontal,
	}
}
