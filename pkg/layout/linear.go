package layout

// placeLinear lays roots side by side along the spread axis, starting at 0.
func placeLinear(roots []*Node, opts Options, horizontal bool) {
	var start float64
	for _, r := range roots {
		placeSpan(r, start, opts, horizontal)
		start += r.Extent + opts.SiblingGap
	}
}

// placeSpan centers n in [start, start+Extent) and packs its children into
// the middle of that span.
func placeSpan(n *Node, start float64, opts Options, horizontal bool) {
	n.Start = start
	spread := start + n.Extent/2
	depth := float64(n.Unit.Depth) * opts.LevelGap
	if horizontal {
		n.X, n.Y = depth, spread
	} else {
		n.X, n.Y = spread, depth
	}

	next := start + (n.Extent-n.childrenExtent(opts.SiblingGap))/2
	for _, c := range n.Children {
		placeSpan(c, next, opts, horizontal)
		next += c.Extent + opts.SiblingGap
	}
}
