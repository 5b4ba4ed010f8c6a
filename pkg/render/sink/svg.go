package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/render/styles"
	"github.com/matzehuels/kintree/pkg/tree"
	"github.com/matzehuels/kintree/pkg/viewport"
)

// DefaultPadding is the margin around the content in SVG output.
const DefaultPadding = viewport.DefaultPadding

const cardInteractionCSS = `
    .card { transition: stroke-width 0.2s ease; }
    .card:hover { stroke-width: 4; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	weights map[string]filter.Weight
	padding float64

	// Set by WithViewport.
	transform *viewport.Transform
	size      viewport.Size
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithWeights applies opacity and highlight hints per person id. Edges take
// the lower opacity of their two ends.
func WithWeights(w map[string]filter.Weight) SVGOption {
	return func(r *svgRenderer) { r.weights = w }
}

// WithPadding sets the margin around the content.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithViewport draws the content through t into a frame of the given size.
func WithViewport(t viewport.Transform, size viewport.Size) SVGOption {
	return func(r *svgRenderer) { r.transform, r.size = &t, size }
}

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l tree.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width, height, group := r.frame(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cardInteractionCSS)
	fmt.Fprintf(&buf, `  <g transform="%s">`+"\n", group)

	cards := r.buildCards(l)
	for _, e := range r.buildEdges(l) {
		r.style.RenderEdge(&buf, e)
	}
	for _, c := range cards {
		r.style.RenderCard(&buf, c)
	}
	for _, c := range cards {
		r.style.RenderText(&buf, c)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// frame returns the document size and the transform of the content group.
func (r *svgRenderer) frame(l tree.Layout) (w, h float64, group string) {
	if r.transform != nil {
		t := r.transform
		return r.size.Width, r.size.Height,
			fmt.Sprintf("matrix(%.4f 0 0 %.4f %.2f %.2f)", t.Scale, t.Scale, t.TranslateX, t.TranslateY)
	}
	b := l.Bounds
	return b.Width() + 2*r.padding, b.Height() + 2*r.padding,
		fmt.Sprintf("translate(%.2f %.2f)", r.padding-b.MinX, r.padding-b.MinY)
}

func (r *svgRenderer) weight(id string) filter.Weight {
	if w, ok := r.weights[id]; ok {
		return w
	}
	return filter.Weight{Opacity: filter.OpacityFull}
}

func (r *svgRenderer) buildCards(l tree.Layout) []styles.Card {
	cards := make([]styles.Card, 0, len(l.Cards))
	for _, c := range l.Cards {
		w := r.weight(c.ID)
		cards = append(cards, styles.Card{
			ID:          c.ID,
			Label:       c.Label,
			Initials:    c.Initials,
			Lifespan:    c.Lifespan,
			Gender:      c.Gender,
			Clan:        c.Clan,
			Deceased:    !c.IsAlive,
			X:           c.X - c.Width/2,
			Y:           c.Y - c.Height/2,
			W:           c.Width,
			H:           c.Height,
			CX:          c.X,
			CY:          c.Y,
			Opacity:     w.Opacity,
			Highlighted: w.Highlighted,
		})
	}
	return cards
}

func (r *svgRenderer) buildEdges(l tree.Layout) []styles.Edge {
	edges := make([]styles.Edge, 0, len(l.Edges))
	for _, e := range l.Edges {
		edges = append(edges, styles.Edge{
			FromID:  e.From,
			ToID:    e.To,
			Spouse:  e.IsSpouse(),
			Mode:    l.Mode,
			X1:      e.X1,
			Y1:      e.Y1,
			X2:      e.X2,
			Y2:      e.Y2,
			Opacity: min(r.weight(e.From).Opacity, r.weight(e.To).Opacity),
		})
	}
	return edges
}
