package layout

import (
	"github.com/matzehuels/kintree/pkg/errors"
)

// Default sizes, in layout units.
const (
	DefaultUnitWidth  = 150.0
	DefaultCardDepth  = 60.0
	DefaultSpouseGap  = 20.0
	DefaultSiblingGap = 30.0
	DefaultLevelGap   = 150.0
	DefaultRingGap    = 200.0
)

// Options sizes the layout. Zero fields take their defaults.
type Options struct {
	// UnitWidth is the spread-axis size of one person card.
	UnitWidth float64
	// CardDepth is the depth-axis size of one person card.
	CardDepth float64
	// SpouseGap separates the two cards of a couple.
	SpouseGap float64
	// SiblingGap separates the extents of sibling units.
	SiblingGap float64
	// LevelGap is the distance between generations in linear modes.
	LevelGap float64
	// RingGap is the distance between generation rings in radial mode.
	RingGap float64
}

// DefaultOptions returns the default sizes.
func DefaultOptions() Options {
	return Options{
		UnitWidth:  DefaultUnitWidth,
		CardDepth:  DefaultCardDepth,
		SpouseGap:  DefaultSpouseGap,
		SiblingGap: DefaultSiblingGap,
		LevelGap:   DefaultLevelGap,
		RingGap:    DefaultRingGap,
	}
}

// WithDefaults returns o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.UnitWidth == 0 {
		o.UnitWidth = d.UnitWidth
	}
	if o.CardDepth == 0 {
		o.CardDepth = d.CardDepth
	}
	if o.SpouseGap == 0 {
		o.SpouseGap = d.SpouseGap
	}
	if o.SiblingGap == 0 {
		o.SiblingGap = d.SiblingGap
	}
	if o.LevelGap == 0 {
		o.LevelGap = d.LevelGap
	}
	if o.RingGap == 0 {
		o.RingGap = d.RingGap
	}
	return o
}

// Validate rejects negative sizes.
func (o Options) Validate() error {
	sizes := []struct {
		name string
		v    float64
	}{
		{"unit width", o.UnitWidth},
		{"card depth", o.CardDepth},
		{"spouse gap", o.SpouseGap},
		{"sibling gap", o.SiblingGap},
		{"level gap", o.LevelGap},
		{"ring gap", o.RingGap},
	}
	for _, s := range sizes {
		if s.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", s.name, s.v)
		}
	}
	return nil
}

// ownWidth is the spread-axis footprint of a unit without its descendants.
func (o Options) ownWidth(couple bool) float64 {
	if couple {
		return 2*o.UnitWidth + o.SpouseGap
	}
	return o.UnitWidth
}
