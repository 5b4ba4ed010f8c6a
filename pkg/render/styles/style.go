// Package styles defines how person cards and connectors are drawn.
//
// Two styles ship: [Simple] outlines cards by gender, [Clan] fills them with
// a colour derived from the family clan.
package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/kintree/pkg/tree"
)

// Style defines the visual appearance of a rendered tree.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderCard writes the SVG for a single person card.
	RenderCard(buf *bytes.Buffer, c Card)
	// RenderEdge writes the SVG for a parent-child or spousal connector.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderText writes the SVG for a card's label text.
	RenderText(buf *bytes.Buffer, c Card)
}

// Card contains all data needed to render a single person card.
type Card struct {
	ID          string
	Label       string
	Initials    string
	Lifespan    string
	Gender      string
	Clan        string
	Deceased    bool
	X, Y, W, H  float64 // top-left corner and size
	CX, CY      float64 // center
	Opacity     float64 // 0 means fully opaque
	Highlighted bool
}

// Edge contains positioning data for rendering a connector.
type Edge struct {
	FromID, ToID   string
	Spouse         bool
	Mode           string // projection, selects straight or elbow routing
	X1, Y1, X2, Y2 float64
	Opacity        float64
}

// ByName returns the style registered under name. An empty name is Simple.
func ByName(name string) (Style, error) {
	switch name {
	case "", tree.StyleSimple:
		return Simple{}, nil
	case tree.StyleClan:
		return Clan{}, nil
	}
	return nil, fmt.Errorf("unknown style %q (want %s or %s)", name, tree.StyleSimple, tree.StyleClan)
}

// edgePath returns the SVG path data of a connector. Parent-child edges in
// the linear projections are routed as elbows, everything else is straight.
func edgePath(e Edge) string {
	switch {
	case e.Spouse || e.Mode == tree.ModeRadial:
		return fmt.Sprintf("M %.2f %.2f L %.2f %.2f", e.X1, e.Y1, e.X2, e.Y2)
	case e.Mode == tree.ModeHorizontal:
		mx := (e.X1 + e.X2) / 2
		return fmt.Sprintf("M %.2f %.2f H %.2f V %.2f H %.2f", e.X1, e.Y1, mx, e.Y2, e.X2)
	default:
		my := (e.Y1 + e.Y2) / 2
		return fmt.Sprintf("M %.2f %.2f V %.2f H %.2f V %.2f", e.X1, e.Y1, my, e.X2, e.Y2)
	}
}

func opacityAttr(o float64) string {
	if o <= 0 || o >= 1 {
		return ""
	}
	return fmt.Sprintf(` opacity="%.2f"`, o)
}
