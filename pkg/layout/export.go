package layout

import (
	"github.com/matzehuels/kintree/pkg/tree"
)

// Export converts the layout into its serialization format.
func (l Layout) Export() tree.Layout {
	out := tree.Layout{
		Mode:   string(l.Mode),
		Width:  l.Bounds.Width(),
		Height: l.Bounds.Height(),
		Bounds: l.Bounds,
		Units:  []tree.Unit{},
		Cards:  []tree.Card{},
		Edges:  []tree.Edge{},
	}

	var export func(n *Node, parent string)
	export = func(n *Node, parent string) {
		u := tree.Unit{
			ID:        n.Unit.Primary.ID,
			PersonIDs: n.Unit.IDs(),
			Parent:    parent,
			Depth:     n.Unit.Depth,
			X:         n.X,
			Y:         n.Y,
			Extent:    n.Extent,
		}
		if l.Mode == Radial {
			u.StartAngle, u.EndAngle, u.Leaves = n.StartAngle, n.EndAngle, n.Leaves
		}
		out.Units = append(out.Units, u)

		cards := l.cards(n)
		for _, c := range cards {
			out.Cards = append(out.Cards, exportCard(c, u.ID))
		}
		if len(cards) == 2 {
			out.Edges = append(out.Edges, tree.Edge{
				From: cards[0].id, To: cards[1].id, Kind: tree.EdgeSpouse,
				X1: cards[0].x, Y1: cards[0].y, X2: cards[1].x, Y2: cards[1].y,
			})
		}

		for _, c := range n.Children {
			out.Edges = append(out.Edges, tree.Edge{
				From: u.ID, To: c.Unit.Primary.ID, Kind: tree.EdgeParent,
				X1: n.X, Y1: n.Y, X2: c.X, Y2: c.Y,
			})
			export(c, u.ID)
		}
	}
	for _, r := range l.Roots {
		export(r, "")
	}
	return out
}

func exportCard(c card, unit string) tree.Card {
	tc := tree.Card{
		ID:         c.id,
		Unit:       unit,
		Label:      c.p.DisplayName(),
		Initials:   c.p.Initials(),
		Lifespan:   c.p.Lifespan(),
		Gender:     string(c.p.Gender),
		Generation: c.p.Generation,
		IsAlive:    c.p.IsAlive,
		X:          c.x,
		Y:          c.y,
		Width:      c.w,
		Height:     c.h,
	}
	if c.p.FamilyClan != nil {
		tc.Clan = *c.p.FamilyClan
	}
	if c.p.Photo != nil {
		tc.Photo = *c.p.Photo
	}
	return tc
}
