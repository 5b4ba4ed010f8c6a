package layout

import (
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/tree"
)

// card is the box of one person within a unit.
type card struct {
	id   string
	p    person.Person
	x, y float64
	w, h float64
	rect tree.Rect
}

// cards returns the person boxes of n, primary first. In a couple the two
// cards sit at either end of the unit's own width.
func (l Layout) cards(n *Node) []card {
	o := l.Options
	w, h := o.UnitWidth, o.CardDepth
	if l.Mode == Horizontal {
		w, h = h, w
	}

	u := n.Unit
	if !u.HasSpouse() {
		return []card{newCard(u.Primary, n.X, n.Y, w, h)}
	}

	off := (n.Own - o.UnitWidth) / 2
	var dx, dy float64
	switch l.Mode {
	case Horizontal:
		dx, dy = 0, off
	case Radial:
		tx, ty := n.tangent()
		dx, dy = tx*off, ty*off
	default:
		dx, dy = off, 0
	}
	return []card{
		newCard(u.Primary, n.X-dx, n.Y-dy, w, h),
		newCard(*u.Spouse, n.X+dx, n.Y+dy, w, h),
	}
}

func newCard(p person.Person, x, y, w, h float64) card {
	return card{id: p.ID, p: p, x: x, y: y, w: w, h: h, rect: tree.RectAround(x, y, w, h)}
}
