package tree

import "math"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Projection modes.
const (
	ModeVertical   = "vertical"
	ModeHorizontal = "horizontal"
	ModeRadial     = "radial"
)

// Edge kinds. Parent-child edges are drawn solid, spousal edges dashed.
const (
	EdgeParent = "parent"
	EdgeSpouse = "spouse"
)

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleClan   = "clan"
)

// =============================================================================
// Rect - Axis-Aligned Bounds
// =============================================================================

// Rect is an axis-aligned rectangle. The zero value is an empty rect.
type Rect struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// EmptyRect returns a rect that is the identity for Union.
func EmptyRect() Rect {
	return Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// RectAround returns the rect of size w×h centered at (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{MinX: cx - w/2, MinY: cy - h/2, MaxX: cx + w/2, MaxY: cy + h/2}
}

// IsEmpty reports whether the rect has no area.
func (r Rect) IsEmpty() bool { return !(r.MaxX > r.MinX && r.MaxY > r.MinY) }

func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Center returns the midpoint of the rect.
func (r Rect) Center() (x, y float64) { return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2 }

// Union returns the smallest rect containing both r and o. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Normalize returns r with empty rects mapped to the zero Rect, so the value
// is safe to serialize.
func (r Rect) Normalize() Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	return r
}
