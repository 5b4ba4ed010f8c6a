package sink

import (
	"encoding/json"

	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/tree"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style   string
	weights map[string]filter.Weight
}

// WithJSONStyle records the style name in the JSON output for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONWeights includes the per-person opacity and highlight hints.
func WithJSONWeights(w map[string]filter.Weight) JSONOption {
	return func(r *jsonRenderer) { r.weights = w }
}

type jsonOutput struct {
	tree.Layout
	Weights map[string]filter.Weight `json:"weights,omitempty"`
}

// RenderJSON renders the layout document as indented JSON.
func RenderJSON(l tree.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style != "" {
		l.Style = r.style
	}
	return json.MarshalIndent(jsonOutput{Layout: l, Weights: r.weights}, "", "  ")
}
