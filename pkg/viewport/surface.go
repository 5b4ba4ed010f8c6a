package viewport

import "context"

// Size is a surface size in screen units.
type Size struct {
	Width  float64
	Height float64
}

// Format is an export artifact format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Surface is a drawing surface the controller can resize and capture.
type Surface interface {
	// Size returns the current surface size.
	Size() Size
	// Resize changes the surface size.
	Resize(Size)
	// NextFrame waits until the surface has reflowed after a resize.
	NextFrame(ctx context.Context) error
	// Capture renders the surface content through t in the given format.
	Capture(ctx context.Context, t Transform, format Format) ([]byte, error)
}
