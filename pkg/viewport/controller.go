package viewport

import (
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Defaults for [Options].
const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 3.0
	DefaultZoomStep = 1.2
	DefaultPadding  = 40.0
)

// Options bounds and tunes the controller. Zero fields take their defaults.
type Options struct {
	MinScale float64
	MaxScale float64
	ZoomStep float64 // factor applied by ZoomIn and divided by ZoomOut
	Padding  float64 // margin kept around content by FitToScreen and Export
}

// DefaultOptions returns the default viewport options.
func DefaultOptions() Options {
	return Options{
		MinScale: DefaultMinScale,
		MaxScale: DefaultMaxScale,
		ZoomStep: DefaultZoomStep,
		Padding:  DefaultPadding,
	}
}

// WithDefaults returns o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.MinScale == 0 {
		o.MinScale = d.MinScale
	}
	if o.MaxScale == 0 {
		o.MaxScale = d.MaxScale
	}
	if o.ZoomStep == 0 {
		o.ZoomStep = d.ZoomStep
	}
	if o.Padding == 0 {
		o.Padding = d.Padding
	}
	return o
}

// Validate checks that the scale range is usable.
func (o Options) Validate() error {
	switch {
	case o.MinScale < 0 || o.MaxScale < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "scale bounds must not be negative")
	case o.MinScale > o.MaxScale:
		return errors.New(errors.ErrCodeInvalidConfig, "min scale %v exceeds max scale %v", o.MinScale, o.MaxScale)
	case o.ZoomStep < 0 || (o.ZoomStep > 0 && o.ZoomStep <= 1):
		return errors.New(errors.ErrCodeInvalidConfig, "zoom step must be greater than 1, got %v", o.ZoomStep)
	case o.Padding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative")
	}
	return nil
}

// Controller owns the transform of one view. It is driven by a single
// input loop and is not safe for concurrent use.
type Controller struct {
	opts   Options
	size   Size
	bounds tree.Rect
	t      Transform
}

// New returns a controller for a viewport of the given size, at the
// identity transform with no content.
func New(opts Options, size Size) *Controller {
	return &Controller{opts: opts.WithDefaults(), size: size, t: Identity}
}

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }

// Transform returns the current transform.
func (c *Controller) Transform() Transform { return c.t }

// Size returns the viewport size.
func (c *Controller) Size() Size { return c.size }

// SetSize changes the viewport size. The transform is kept.
func (c *Controller) SetSize(s Size) { c.size = s }

// Bounds returns the content bounds.
func (c *Controller) Bounds() tree.Rect { return c.bounds }

// SetBounds replaces the content bounds, typically after a new layout.
func (c *Controller) SetBounds(r tree.Rect) { c.bounds = r }

// ZoomIn zooms by the zoom step around the viewport center.
func (c *Controller) ZoomIn() {
	c.ZoomAt(c.opts.ZoomStep, c.size.Width/2, c.size.Height/2)
}

// ZoomOut zooms out by the zoom step around the viewport center.
func (c *Controller) ZoomOut() {
	c.ZoomAt(1/c.opts.ZoomStep, c.size.Width/2, c.size.Height/2)
}

// ZoomAt multiplies the scale by factor, clamped, keeping the layout point
// under the screen point (px, py) fixed.
func (c *Controller) ZoomAt(factor, px, py float64) {
	if factor <= 0 {
		return
	}
	c.t = c.t.ScaleAbout(c.clamp(c.t.Scale*factor), px, py)
}

// Pan moves the view by (dx, dy) screen units.
func (c *Controller) Pan(dx, dy float64) { c.t = c.t.Translate(dx, dy) }

// ResetZoom returns to the identity transform.
func (c *Controller) ResetZoom() { c.t = Identity }

// FitToScreen picks the largest scale up to 1 at which the content bounds fit
// the viewport minus padding, never below MinScale, and centers the content.
// It does nothing when there is no content.
func (c *Controller) FitToScreen() {
	if c.bounds.IsEmpty() {
		return
	}
	c.t = c.fit()
}

func (c *Controller) fit() Transform {
	p := c.opts.Padding
	availW, availH := c.size.Width-2*p, c.size.Height-2*p

	scale := 1.0
	if availW <= 0 || availH <= 0 {
		scale = c.opts.MinScale
	} else {
		scale = min(scale, availW/c.bounds.Width(), availH/c.bounds.Height())
	}
	scale = c.clamp(scale)

	cx, cy := c.bounds.Center()
	return Transform{
		Scale:      scale,
		TranslateX: c.size.Width/2 - cx*scale,
		TranslateY: c.size.Height/2 - cy*scale,
	}
}

func (c *Controller) clamp(s float64) float64 {
	return max(c.opts.MinScale, min(c.opts.MaxScale, s))
}
