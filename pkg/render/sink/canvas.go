package sink

import (
	"context"
	"sync"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/tree"
	"github.com/matzehuels/kintree/pkg/viewport"
)

// Canvas is an off-screen drawing surface holding one layout. It implements
// [viewport.Surface]: capture renders the layout through the given transform
// into a frame of the canvas's current size.
type Canvas struct {
	mu      sync.Mutex
	layout  tree.Layout
	size    viewport.Size
	svgOpts []SVGOption
	scale   float64
	frames  int
}

var _ viewport.Surface = (*Canvas)(nil)

// NewCanvas returns a canvas of the given size showing l. svgOpts style the
// captured output; viewport options are supplied at capture time.
func NewCanvas(l tree.Layout, size viewport.Size, svgOpts ...SVGOption) *Canvas {
	return &Canvas{layout: l, size: size, svgOpts: svgOpts, scale: 1}
}

// SetLayout replaces the layout shown on the canvas.
func (c *Canvas) SetLayout(l tree.Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layout = l
}

// SetRasterScale sets the PNG scale factor used by Capture.
func (c *Canvas) SetRasterScale(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scale = s
}

func (c *Canvas) Size() viewport.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *Canvas) Resize(s viewport.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = s
}

// NextFrame completes immediately: an off-screen canvas has nothing to
// reflow. It still honours cancellation.
func (c *Canvas) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.frames++
	c.mu.Unlock()
	return nil
}

// Frames returns how many frames the canvas has produced.
func (c *Canvas) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Capture renders the canvas content through t in the given format.
func (c *Canvas) Capture(ctx context.Context, t viewport.Transform, format viewport.Format) ([]byte, error) {
	c.mu.Lock()
	l, size, scale := c.layout, c.size, c.scale
	opts := append(append([]SVGOption(nil), c.svgOpts...), WithViewport(t, size))
	c.mu.Unlock()

	svg := RenderSVG(l, opts...)
	switch format {
	case viewport.FormatSVG:
		return svg, nil
	case viewport.FormatPNG:
		return render.ToPNG(ctx, svg, scale)
	case viewport.FormatPDF:
		return render.ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported capture format %q", format)
}
