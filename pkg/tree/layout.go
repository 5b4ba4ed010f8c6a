package tree

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// =============================================================================
// Layout - Positioned Family Tree
// =============================================================================

// Layout is the serialization format for a positioned family tree.
//
// Units are listed depth-first, parents before children. Cards hold one box
// per person, Edges connect cards (spouse) or a unit to its child unit
// (parent). Bounds is the union of every card box.
type Layout struct {
	Mode   string  `json:"mode" bson:"mode"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Bounds Rect    `json:"bounds" bson:"bounds"`
	Style  string  `json:"style,omitempty" bson:"style,omitempty"`

	Units []Unit `json:"units" bson:"units"`
	Cards []Card `json:"cards" bson:"cards"`
	Edges []Edge `json:"edges" bson:"edges"`

	// DatasetHash identifies the person set the layout was computed from.
	DatasetHash string `json:"dataset_hash,omitempty" bson:"dataset_hash,omitempty"`
}

// IsEmpty reports whether the layout has no content.
func (l *Layout) IsEmpty() bool { return len(l.Cards) == 0 }

// Card returns the card of the given person.
func (l *Layout) Card(id string) (Card, bool) {
	i := slices.IndexFunc(l.Cards, func(c Card) bool { return c.ID == id })
	if i < 0 {
		return Card{}, false
	}
	return l.Cards[i], true
}

// =============================================================================
// Unit - Positioned Couple Unit
// =============================================================================

// Unit is one couple unit. ID is the primary person's id.
type Unit struct {
	ID        string   `json:"id" bson:"id"`
	PersonIDs []string `json:"person_ids" bson:"person_ids"`
	Parent    string   `json:"parent,omitempty" bson:"parent,omitempty"`
	Depth     int      `json:"depth" bson:"depth"`
	X         float64  `json:"x" bson:"x"`
	Y         float64  `json:"y" bson:"y"`
	Extent    float64  `json:"extent" bson:"extent"`

	// Radial only.
	StartAngle float64 `json:"start_angle,omitempty" bson:"start_angle,omitempty"`
	EndAngle   float64 `json:"end_angle,omitempty" bson:"end_angle,omitempty"`
	Leaves     int     `json:"leaves,omitempty" bson:"leaves,omitempty"`
}

// =============================================================================
// Card - Person Box
// =============================================================================

// Card is the box drawn for one person, centered at X, Y.
type Card struct {
	ID         string  `json:"id" bson:"id"`
	Unit       string  `json:"unit" bson:"unit"`
	Label      string  `json:"label" bson:"label"`
	Initials   string  `json:"initials,omitempty" bson:"initials,omitempty"`
	Lifespan   string  `json:"lifespan,omitempty" bson:"lifespan,omitempty"`
	Gender     string  `json:"gender" bson:"gender"`
	Clan       string  `json:"clan,omitempty" bson:"clan,omitempty"`
	Generation *int    `json:"generation,omitempty" bson:"generation,omitempty"`
	IsAlive    bool    `json:"is_alive" bson:"is_alive"`
	Photo      string  `json:"photo,omitempty" bson:"photo,omitempty"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
}

// Rect returns the card's box.
func (c Card) Rect() Rect { return RectAround(c.X, c.Y, c.Width, c.Height) }

// =============================================================================
// Edge - Connector
// =============================================================================

// Edge is a connector between two points. Kind is EdgeParent or EdgeSpouse.
type Edge struct {
	From string  `json:"from" bson:"from"`
	To   string  `json:"to" bson:"to"`
	Kind string  `json:"kind" bson:"kind"`
	X1   float64 `json:"x1" bson:"x1"`
	Y1   float64 `json:"y1" bson:"y1"`
	X2   float64 `json:"x2" bson:"x2"`
	Y2   float64 `json:"y2" bson:"y2"`
}

// IsSpouse reports whether the edge is a spousal connector.
func (e Edge) IsSpouse() bool { return e.Kind == EdgeSpouse }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates the mode and that every card and edge references a known unit.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.Mode == "" {
		l.Mode = ModeVertical
	}
	if !slices.Contains([]string{ModeVertical, ModeHorizontal, ModeRadial}, l.Mode) {
		return Layout{}, fmt.Errorf("unknown layout mode %q", l.Mode)
	}

	units := make(map[string]bool, len(l.Units))
	for _, u := range l.Units {
		units[u.ID] = true
	}
	for _, c := range l.Cards {
		if !units[c.Unit] {
			return Layout{}, fmt.Errorf("card %q references unknown unit %q", c.ID, c.Unit)
		}
	}
	for _, e := range l.Edges {
		if e.Kind != EdgeParent && e.Kind != EdgeSpouse {
			return Layout{}, fmt.Errorf("edge %s->%s has unknown kind %q", e.From, e.To, e.Kind)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
