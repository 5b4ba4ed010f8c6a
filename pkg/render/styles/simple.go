package styles

import (
	"bytes"
	"fmt"
)

// Simple draws white cards outlined by gender with solid parent and dashed
// spousal connectors.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderCard(buf *bytes.Buffer, c Card) {
	renderCard(buf, c, cardFill(c, "white"))
}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	renderEdge(buf, e)
}

func (Simple) RenderText(buf *bytes.Buffer, c Card) {
	renderText(buf, c)
}

func genderStroke(gender string) string {
	switch gender {
	case "MALE":
		return "#2b6cb0"
	case "FEMALE":
		return "#c53030"
	default:
		return "#555"
	}
}

func cardFill(c Card, fill string) string {
	if c.Deceased {
		return "#eeeeee"
	}
	return fill
}

func renderCard(buf *bytes.Buffer, c Card, fill string) {
	width := 2.0
	if c.Highlighted {
		width = 4
	}
	fmt.Fprintf(buf, `  <rect id="card-%s" class="card" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="8" fill="%s" stroke="%s" stroke-width="%.0f"%s/>`+"\n",
		EscapeXML(c.ID), c.X, c.Y, c.W, c.H, fill, genderStroke(c.Gender), width, opacityAttr(c.Opacity))
}

func renderEdge(buf *bytes.Buffer, e Edge) {
	dash := ""
	if e.Spouse {
		dash = ` stroke-dasharray="6,4"`
	}
	fmt.Fprintf(buf, `  <path class="edge" d="%s" fill="none" stroke="#666" stroke-width="2"%s%s/>`+"\n",
		edgePath(e), dash, opacityAttr(e.Opacity))
}

func renderText(buf *bytes.Buffer, c Card) {
	size := FontSize(c)
	label := TruncateLabel(c, size)
	weight := ""
	if c.Highlighted {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(buf, `  <text class="card-text" x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="%.1f"%s%s>%s</text>`+"\n",
		c.CX, c.CY-size*0.2, size, weight, opacityAttr(c.Opacity), EscapeXML(label))
	if c.Lifespan != "" {
		small := size * 0.75
		fmt.Fprintf(buf, `  <text class="card-years" x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="%.1f" fill="#555"%s>%s</text>`+"\n",
			c.CX, c.CY+small*1.1, small, opacityAttr(c.Opacity), EscapeXML(c.Lifespan))
	}
}
