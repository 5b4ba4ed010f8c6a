package layout

import "math"

// placeRadial partitions the full circle among the roots by leaf count.
// With several roots every ring moves out by one so no root sits at the
// origin.
func placeRadial(roots []*Node, opts Options) {
	var ring float64
	if len(roots) > 1 {
		ring = 1
	}
	placeSectors(roots, 0, 2*math.Pi, ring, opts)
}

// placeSectors splits [start, end) among nodes proportionally to their leaf
// counts. The last node absorbs rounding so the spans sum exactly to the
// parent's span.
func placeSectors(nodes []*Node, start, end, ring float64, opts Options) {
	var leaves int
	for _, n := range nodes {
		leaves += n.Leaves
	}

	a := start
	for i, n := range nodes {
		b := a + (end-start)*float64(n.Leaves)/float64(leaves)
		if i == len(nodes)-1 {
			b = end
		}
		placeArc(n, a, b, ring, opts)
		a = b
	}
}

func placeArc(n *Node, start, end, ring float64, opts Options) {
	n.StartAngle, n.EndAngle = start, end
	n.Radius = (float64(n.Unit.Depth) + ring) * opts.RingGap
	mid := n.MidAngle()
	n.X, n.Y = math.Cos(mid)*n.Radius, math.Sin(mid)*n.Radius
	placeSectors(n.Children, start, end, ring, opts)
}

// tangent is the unit vector along which the cards of a radial couple are
// spread. Units at the origin spread horizontally.
func (n *Node) tangent() (dx, dy float64) {
	if n.Radius == 0 {
		return 1, 0
	}
	mid := n.MidAngle()
	return -math.Sin(mid), math.Cos(mid)
}
