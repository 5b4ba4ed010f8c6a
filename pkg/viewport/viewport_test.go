package viewport

import (
	"context"
	"errors"
	"math"
	"testing"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/tree"
)

const eps = 1e-9

type fakeSurface struct {
	size       Size
	resizes    []Size
	frames     int
	frameErr   error
	captureErr error
	panicOn    bool
	captured   Transform
	capturedAt Size
}

func (f *fakeSurface) Size() Size { return f.size }

func (f *fakeSurface) Resize(s Size) {
	f.size = s
	f.resizes = append(f.resizes, s)
}

func (f *fakeSurface) NextFrame(context.Context) error {
	f.frames++
	return f.frameErr
}

func (f *fakeSurface) Capture(_ context.Context, t Transform, format Format) ([]byte, error) {
	if f.panicOn {
		panic("surface lost")
	}
	f.captured, f.capturedAt = t, f.size
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return []byte(format), nil
}

func newController(bounds tree.Rect) *Controller {
	c := New(DefaultOptions(), Size{Width: 800, Height: 600})
	c.SetBounds(bounds)
	return c
}

func TestFitToScreen(t *testing.T) {
	tests := []struct {
		name      string
		bounds    tree.Rect
		wantScale float64
	}{
		{"small content keeps scale 1", tree.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, 1},
		{"wide content", tree.Rect{MinX: 0, MinY: 0, MaxX: 1440, MaxY: 100}, 0.5},
		{"tall content", tree.Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 940}, 0.5},
		{"huge content floors", tree.Rect{MinX: 0, MinY: 0, MaxX: 1e6, MaxY: 10}, DefaultMinScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(tt.bounds)
			c.FitToScreen()
			got := c.Transform()
			if math.Abs(got.Scale-tt.wantScale) > eps {
				t.Errorf("scale = %v, want %v", got.Scale, tt.wantScale)
			}
			cx, cy := tt.bounds.Center()
			sx, sy := got.Apply(cx, cy)
			if math.Abs(sx-400) > eps || math.Abs(sy-300) > eps {
				t.Errorf("content center maps to (%v, %v), want (400, 300)", sx, sy)
			}
		})
	}
}

func TestFitToScreenIdempotent(t *testing.T) {
	c := newController(tree.Rect{MinX: -500, MinY: 20, MaxX: 2500, MaxY: 900})
	c.Pan(13, -7)
	c.ZoomIn()
	c.FitToScreen()
	first := c.Transform()
	c.FitToScreen()
	if c.Transform() != first {
		t.Errorf("second fit = %+v, first = %+v", c.Transform(), first)
	}
}

func TestFitToScreenEmptyIsNoop(t *testing.T) {
	c := newController(tree.Rect{})
	c.Pan(10, 10)
	before := c.Transform()
	c.FitToScreen()
	if c.Transform() != before {
		t.Errorf("fit on empty content changed transform to %+v", c.Transform())
	}
}

func TestZoomClamp(t *testing.T) {
	c := newController(tree.Rect{})
	for range 50 {
		c.ZoomIn()
	}
	if got := c.Transform().Scale; got != DefaultMaxScale {
		t.Errorf("scale after zooming in = %v, want %v", got, DefaultMaxScale)
	}
	for range 100 {
		c.ZoomOut()
	}
	if got := c.Transform().Scale; got != DefaultMinScale {
		t.Errorf("scale after zooming out = %v, want %v", got, DefaultMinScale)
	}
	c.ResetZoom()
	if c.Transform() != Identity {
		t.Errorf("ResetZoom = %+v", c.Transform())
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	c := newController(tree.Rect{})
	c.Pan(37, -12)
	px, py := 250.0, 125.0
	wx, wy := c.Transform().Invert(px, py)

	c.ZoomAt(1.7, px, py)
	sx, sy := c.Transform().Apply(wx, wy)
	if math.Abs(sx-px) > eps || math.Abs(sy-py) > eps {
		t.Errorf("anchor moved to (%v, %v), want (%v, %v)", sx, sy, px, py)
	}
	if math.Abs(c.Transform().Scale-1.7) > eps {
		t.Errorf("scale = %v, want 1.7", c.Transform().Scale)
	}

	c.ZoomAt(0, px, py)
	c.ZoomAt(-2, px, py)
	if math.Abs(c.Transform().Scale-1.7) > eps {
		t.Error("non-positive factors should be ignored")
	}
}

func TestPan(t *testing.T) {
	c := newController(tree.Rect{})
	c.Pan(10, 20)
	c.Pan(-5, 5)
	want := Transform{Scale: 1, TranslateX: 5, TranslateY: 25}
	if c.Transform() != want {
		t.Errorf("Transform = %+v, want %+v", c.Transform(), want)
	}
}

func TestExport(t *testing.T) {
	c := newController(tree.Rect{MinX: -100, MinY: -30, MaxX: 300, MaxY: 170})
	c.Pan(50, 50)
	before := c.Transform()
	s := &fakeSurface{size: Size{Width: 800, Height: 600}}

	data, err := c.ExportSVG(context.Background(), s)
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if string(data) != "svg" {
		t.Errorf("data = %q", data)
	}
	if s.capturedAt != (Size{Width: 480, Height: 280}) {
		t.Errorf("captured at %+v, want 480x280", s.capturedAt)
	}
	if want := (Transform{Scale: 1, TranslateX: 140, TranslateY: 70}); s.captured != want {
		t.Errorf("captured with %+v, want %+v", s.captured, want)
	}
	if s.frames != 1 {
		t.Errorf("waited %d frames, want 1", s.frames)
	}
	if s.size != (Size{Width: 800, Height: 600}) || c.Transform() != before {
		t.Errorf("state not restored: size %+v, transform %+v", s.size, c.Transform())
	}
}

func TestExportRestoresOnFailure(t *testing.T) {
	orig := Size{Width: 640, Height: 480}
	tests := []struct {
		name string
		s    *fakeSurface
	}{
		{"frame error", &fakeSurface{size: orig, frameErr: errors.New("surface detached")}},
		{"capture error", &fakeSurface{size: orig, captureErr: errors.New("rasterizer crashed")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(tree.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
			c.ZoomIn()
			before := c.Transform()

			_, err := c.ExportPNG(context.Background(), tt.s)
			if !kerrors.Is(err, kerrors.ErrCodeExportFailed) {
				t.Fatalf("error = %v, want EXPORT_FAILED", err)
			}
			if tt.s.size != orig {
				t.Errorf("surface size = %+v, want %+v", tt.s.size, orig)
			}
			if c.Transform() != before {
				t.Errorf("transform = %+v, want %+v", c.Transform(), before)
			}
		})
	}
}

func TestExportRestoresOnPanic(t *testing.T) {
	orig := Size{Width: 640, Height: 480}
	s := &fakeSurface{size: orig, panicOn: true}
	c := newController(tree.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	before := c.Transform()

	func() {
		defer func() { _ = recover() }()
		_, _ = c.ExportPDF(context.Background(), s)
	}()
	if s.size != orig || c.Transform() != before {
		t.Errorf("state not restored after panic: size %+v, transform %+v", s.size, c.Transform())
	}
}

func TestExportEmptyIsNoop(t *testing.T) {
	s := &fakeSurface{size: Size{Width: 10, Height: 10}}
	c := newController(tree.Rect{})
	data, err := c.ExportPNG(context.Background(), s)
	if data != nil || err != nil {
		t.Errorf("ExportPNG on empty = %v, %v; want nil, nil", data, err)
	}
	if len(s.resizes) != 0 || s.frames != 0 {
		t.Error("empty export touched the surface")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"defaults", DefaultOptions(), true},
		{"zero", Options{}, true},
		{"inverted", Options{MinScale: 2, MaxScale: 1}, false},
		{"step below one", Options{ZoomStep: 0.5}, false},
		{"negative padding", Options{Padding: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok=%v", err, tt.ok)
			}
		})
	}
}
