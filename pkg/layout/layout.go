package layout

import (
	"github.com/matzehuels/kintree/pkg/forest"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Node is a positioned couple unit.
type Node struct {
	Unit     *forest.Unit
	Children []*Node

	// X, Y is the unit's center.
	X, Y float64

	// Own is the spread-axis width of the unit's cards, Extent the width
	// reserved for the unit and all its descendants, starting at Start.
	Own    float64
	Extent float64
	Start  float64

	// Radial mode only.
	Leaves     int
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// MidAngle returns the middle of the node's angular span.
func (n *Node) MidAngle() float64 { return (n.StartAngle + n.EndAngle) / 2 }

// Span returns the node's angular span.
func (n *Node) Span() float64 { return n.EndAngle - n.StartAngle }

// Layout is a positioned forest.
type Layout struct {
	Mode    Mode
	Options Options
	Roots   []*Node
	Bounds  tree.Rect
}

// Compute positions the forest in the given mode. It fails only for an
// unknown mode or invalid options; an empty forest yields an empty layout.
func Compute(roots []*forest.Unit, mode Mode, opts Options) (Layout, error) {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return Layout{}, err
	}
	if err := opts.Validate(); err != nil {
		return Layout{}, err
	}
	opts = opts.WithDefaults()

	l := Layout{Mode: mode, Options: opts, Roots: make([]*Node, len(roots))}
	for i, u := range roots {
		l.Roots[i] = measure(u, opts)
	}

	switch mode {
	case Radial:
		placeRadial(l.Roots, opts)
	default:
		placeLinear(l.Roots, opts, mode == Horizontal)
	}

	l.Bounds = tree.EmptyRect()
	l.Walk(func(n *Node) {
		for _, c := range l.cards(n) {
			l.Bounds = l.Bounds.Union(c.rect)
		}
	})
	l.Bounds = l.Bounds.Normalize()
	return l, nil
}

// measure builds the node tree and runs the bottom-up pass: extents for the
// linear modes and leaf counts for the radial mode.
func measure(u *forest.Unit, opts Options) *Node {
	n := &Node{Unit: u, Own: opts.ownWidth(u.HasSpouse())}

	for _, c := range u.Children {
		cn := measure(c, opts)
		n.Children = append(n.Children, cn)
		n.Leaves += cn.Leaves
	}
	n.Leaves = max(n.Leaves, 1)
	n.Extent = max(n.Own, n.childrenExtent(opts.SiblingGap))
	return n
}

// childrenExtent is the span the node's children occupy, gaps included.
func (n *Node) childrenExtent(gap float64) float64 {
	var sum float64
	for i, c := range n.Children {
		if i > 0 {
			sum += gap
		}
		sum += c.Extent
	}
	return sum
}

// Walk visits every node depth-first, parents before children.
func (l Layout) Walk(fn func(*Node)) {
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(l.Roots)
}

// Nodes returns every node in walk order.
func (l Layout) Nodes() []*Node {
	var out []*Node
	l.Walk(func(n *Node) { out = append(out, n) })
	return out
}

// Len returns the number of positioned units.
func (l Layout) Len() int {
	var n int
	l.Walk(func(*Node) { n++ })
	return n
}

// IsEmpty reports whether the layout has no units.
func (l Layout) IsEmpty() bool { return len(l.Roots) == 0 }

// Point is a position in layout coordinates.
type Point struct{ X, Y float64 }

// PersonPositions returns the card center of every placed person.
func (l Layout) PersonPositions() map[string]Point {
	out := make(map[string]Point)
	l.Walk(func(n *Node) {
		for _, c := range l.cards(n) {
			out[c.id] = Point{c.x, c.y}
		}
	})
	return out
}
