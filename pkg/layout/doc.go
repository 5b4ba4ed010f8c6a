// Package layout positions a couple-unit forest in one of three projections.
//
// # Passes
//
// Every mode runs the same two passes over the forest:
//
//  1. Bottom-up extent computation. A unit reserves the larger of its own
//     width (one card, or two cards plus the spouse gap) and the sum of its
//     children's extents plus the sibling gaps between them.
//  2. Top-down position assignment. A unit is centered over the span its
//     children occupy.
//
// # Modes
//
//   - [Vertical]: spread along x, one row per generation along y.
//   - [Horizontal]: the same with the axes swapped.
//   - [Radial]: generations become rings, and each unit gets an angular span
//     proportional to its leaf count. Leaf counts floor at 1 per unit.
//
// Several roots are placed side by side, or in radial mode partitioned into
// angular sectors proportional to their leaf counts, in root order.
//
// # Usage
//
//	l, err := layout.Compute(forest.Build(people), layout.Radial, layout.DefaultOptions())
//	doc := l.Export()
//	fmt.Println(doc.Bounds.Width(), len(doc.Cards))
package layout
