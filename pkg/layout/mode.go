package layout

import (
	"strings"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Mode selects the projection.
type Mode string

const (
	Vertical   Mode = tree.ModeVertical
	Horizontal Mode = tree.ModeHorizontal
	Radial     Mode = tree.ModeRadial
)

// Modes lists every projection in cycling order.
var Modes = []Mode{Vertical, Horizontal, Radial}

// ParseMode maps a name onto a Mode, case-insensitively.
// An empty name is Vertical.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Vertical:
		return Vertical, nil
	case Horizontal:
		return Horizontal, nil
	case Radial:
		return Radial, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown layout mode %q (want vertical, horizontal or radial)", s)
}

// Next returns the mode after m in [Modes], wrapping around.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Vertical
}

func (m Mode) String() string { return string(m) }
