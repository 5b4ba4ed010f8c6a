// Package pipeline runs the kintree load → normalize → build → layout → render
// pipeline.
//
// The CLI and the HTTP server both go through a [Runner] so caching, hooks
// and defaults behave the same everywhere.
//
// # Stages
//
//  1. Load: read person records from a store (cached per source)
//  2. Normalize and build: person.Normalize, then forest.Build
//  3. Layout: layout.Compute in the requested mode, exported as a tree.Layout
//  4. Render: SVG, PNG, PDF, JSON or DOT artifacts
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	fam, err := runner.Open(ctx, store.Config{Driver: "sqlite", DSN: "family.db"}, opts)
//	result, err := runner.Execute(ctx, fam, pipeline.Options{Mode: "radial", Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render/styles"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Visualization types. A tree is drawn from computed positions; a node-link
// diagram is laid out by Graphviz from the same unit structure.
const (
	VizTree     = "tree"
	VizNodelink = "nodelink"
)

// Defaults shared by the CLI and the server.
const (
	DefaultStyle = tree.StyleSimple
	DefaultScale = 2.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTree:     true,
	VizNodelink: true,
}

// Options configures one pipeline run. The JSON form is accepted by the
// HTTP server.
type Options struct {
	// Layout options
	Mode   string         `json:"mode,omitempty"`
	Layout layout.Options `json:"-"`

	// Render options
	VizType  string         `json:"viz_type,omitempty"`
	Formats  []string       `json:"formats,omitempty"`
	Style    string         `json:"style,omitempty"`
	Scale    float64        `json:"scale,omitempty"`
	Detailed bool           `json:"detailed,omitempty"` // lifespans and clans in node-link labels
	Filter   *filter.Filter `json:"filter,omitempty"`   // opacity and highlight hints; nil renders everyone opaque

	// Refresh bypasses cached datasets.
	Refresh bool `json:"refresh,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Family    *Family
	Layout    tree.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains execution statistics.
type Stats struct {
	People     int
	Units      int
	Roots      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every requested artifact came from cache
}

// ValidateFormat checks that a format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is supported.
func ValidateVizType(v string) error {
	if !ValidVizTypes[v] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type %q (must be one of: tree, nodelink)", v)
	}
	return nil
}

// SetLayoutDefaults fills the layout fields.
func (o *Options) SetLayoutDefaults() {
	if o.Mode == "" {
		o.Mode = layout.Vertical.String()
	}
	o.Layout = o.Layout.WithDefaults()
}

// ValidateForLayout applies layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	m, err := layout.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.Mode = m.String()
	return o.Layout.Validate()
}

// SetRenderDefaults fills the render fields.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = VizTree
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender applies render defaults and validates them.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := styles.ByName(o.Style); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "style")
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	return nil
}

// LayoutKeyOpts returns the cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:       o.Mode,
		UnitWidth:  o.Layout.UnitWidth,
		CardDepth:  o.Layout.CardDepth,
		SpouseGap:  o.Layout.SpouseGap,
		SiblingGap: o.Layout.SiblingGap,
		LevelGap:   o.Layout.LevelGap,
		RingGap:    o.Layout.RingGap,
	}
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.VizType + "/" + o.Style,
		Filter: filterKey(o.Filter),
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if o.Detailed && o.VizType == VizNodelink {
		k.Style += "/detailed"
	}
	return k
}

// filterKey encodes the parts of a filter that change rendering.
func filterKey(f *filter.Filter) string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	if f.Clan != nil {
		fmt.Fprintf(&b, "clan=%s;", *f.Clan)
	}
	if f.Generation != nil {
		fmt.Fprintf(&b, "gen=%d;", *f.Generation)
	}
	if f.Gender != nil {
		fmt.Fprintf(&b, "gender=%s;", *f.Gender)
	}
	fmt.Fprintf(&b, "living=%t;deceased=%t;q=%s", f.ShowLiving, f.ShowDeceased, strings.ToLower(strings.TrimSpace(f.Query)))
	return b.String()
}
