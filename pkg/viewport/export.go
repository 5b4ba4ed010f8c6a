package viewport

import (
	"context"

	"github.com/matzehuels/kintree/pkg/errors"
)

// ExportPNG captures the full content as a raster image.
func (c *Controller) ExportPNG(ctx context.Context, s Surface) ([]byte, error) {
	return c.Export(ctx, s, FormatPNG)
}

// ExportSVG captures the full content as a vector image.
func (c *Controller) ExportSVG(ctx context.Context, s Surface) ([]byte, error) {
	return c.Export(ctx, s, FormatSVG)
}

// ExportPDF captures the full content as a paginated document.
func (c *Controller) ExportPDF(ctx context.Context, s Surface) ([]byte, error) {
	return c.Export(ctx, s, FormatPDF)
}

// ExportSize is the surface size an export uses: the content bounds plus
// padding on every side.
func (c *Controller) ExportSize() Size {
	p := c.opts.Padding
	return Size{Width: c.bounds.Width() + 2*p, Height: c.bounds.Height() + 2*p}
}

// ExportTransform is the transform an export captures with: unscaled, with
// the content's top-left corner at the padding offset.
func (c *Controller) ExportTransform() Transform {
	p := c.opts.Padding
	return Transform{Scale: 1, TranslateX: p - c.bounds.MinX, TranslateY: p - c.bounds.MinY}
}

// Export resizes s to fit the content, captures it in format and restores the
// surface size and the controller transform, whether or not capture succeeds.
// With no content it returns nil, nil and leaves s untouched.
func (c *Controller) Export(ctx context.Context, s Surface, format Format) ([]byte, error) {
	if c.bounds.IsEmpty() {
		return nil, nil
	}

	release := c.acquire(s)
	defer release()

	if err := s.NextFrame(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "wait for surface")
	}
	data, err := s.Capture(ctx, c.t, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "capture %s", format)
	}
	return data, nil
}

// acquire switches s and the controller into export state and returns the
// function that restores both.
func (c *Controller) acquire(s Surface) (release func()) {
	prevSize, prevT := s.Size(), c.t

	s.Resize(c.ExportSize())
	c.t = c.ExportTransform()

	return func() {
		s.Resize(prevSize)
		c.t = prevT
	}
}
