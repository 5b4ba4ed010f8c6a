package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontHeightRatio = 0.35
	fontWidthRatio  = 0.9
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 18.0
)

// FontSize picks a label size that fits the card.
func FontSize(c Card) float64 {
	n := max(1, utf8.RuneCountInString(c.Label))
	byHeight := c.H * fontHeightRatio
	byWidth := (c.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens the label to what fits the card at the given font
// size, ending in "..". Cards too narrow for any name fall back to initials.
func TruncateLabel(c Card, fontSize float64) string {
	maxChars := int(c.W * fontWidthRatio / (fontSize * fontCharWidth))
	label := []rune(c.Label)
	if len(label) <= maxChars {
		return c.Label
	}
	if maxChars < 4 && c.Initials != "" {
		return c.Initials
	}
	maxChars = max(maxChars, 3)
	return string(label[:maxChars-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
