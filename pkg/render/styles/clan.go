package styles

import (
	"bytes"
	"fmt"
	"hash/fnv"
)

// Clan fills cards with a pastel colour per family clan. People without a
// clan are drawn as in [Simple].
type Clan struct{}

func (Clan) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs><filter id="card-shadow"><feDropShadow dx="0" dy="2" stdDeviation="2" flood-opacity="0.25"/></filter></defs>` + "\n")
}

func (Clan) RenderCard(buf *bytes.Buffer, c Card) {
	renderCard(buf, c, cardFill(c, ClanColor(c.Clan)))
}

func (Clan) RenderEdge(buf *bytes.Buffer, e Edge) {
	renderEdge(buf, e)
}

func (Clan) RenderText(buf *bytes.Buffer, c Card) {
	renderText(buf, c)
}

// ClanColor maps a clan name onto a stable pastel colour. The empty clan
// is white.
func ClanColor(clan string) string {
	if clan == "" {
		return "white"
	}
	h := fnv.New32a()
	h.Write([]byte(clan))
	return fmt.Sprintf("hsl(%d, 70%%, 88%%)", h.Sum32()%360)
}
