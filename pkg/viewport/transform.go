package viewport

// Transform is a uniform scale followed by a translation.
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Identity is the unscaled, untranslated transform.
var Identity = Transform{Scale: 1}

// Apply maps a layout point to screen coordinates.
func (t Transform) Apply(x, y float64) (sx, sy float64) {
	return x*t.Scale + t.TranslateX, y*t.Scale + t.TranslateY
}

// Invert maps a screen point back to layout coordinates.
func (t Transform) Invert(sx, sy float64) (x, y float64) {
	return (sx - t.TranslateX) / t.Scale, (sy - t.TranslateY) / t.Scale
}

// Translate returns t moved by (dx, dy) screen units.
func (t Transform) Translate(dx, dy float64) Transform {
	t.TranslateX += dx
	t.TranslateY += dy
	return t
}

// ScaleAbout returns t rescaled to scale, keeping the screen point (px, py)
// over the same layout point.
func (t Transform) ScaleAbout(scale, px, py float64) Transform {
	wx, wy := t.Invert(px, py)
	return Transform{
		Scale:      scale,
		TranslateX: px - wx*scale,
		TranslateY: py - wy*scale,
	}
}
