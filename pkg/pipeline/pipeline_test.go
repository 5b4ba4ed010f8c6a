package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/store"
	"github.com/matzehuels/kintree/pkg/store/sqlite"
	"github.com/matzehuels/kintree/pkg/tree"
)

func ptr[T any](v T) *T { return &v }

// family: Obi & Ada with children Eze and Nneka; Eze married to Kemi.
func records() []person.Record {
	return []person.Record{
		{ID: "obi", FirstName: "Obi", LastName: "Okafor", Gender: "MALE", DateOfBirth: ptr("1940-01-01"), FamilyClan: ptr("Okafor"), SpouseID: ptr("ada")},
		{ID: "ada", FirstName: "Ada", LastName: "Okafor", Gender: "FEMALE", DateOfBirth: ptr("1945-01-01"), IsAlive: true},
		{ID: "eze", FirstName: "Eze", LastName: "Okafor", Gender: "MALE", DateOfBirth: ptr("1970-01-01"), FatherID: ptr("obi"), MotherID: ptr("ada"), SpouseID: ptr("kemi"), IsAlive: true},
		{ID: "nneka", FirstName: "Nneka", LastName: "Okafor", Gender: "FEMALE", DateOfBirth: ptr("1972-01-01"), FatherID: ptr("obi"), MotherID: ptr("ada"), IsAlive: true},
		{ID: "kemi", FirstName: "Kemi", LastName: "Bello", Gender: "FEMALE", DateOfBirth: ptr("1974-01-01"), IsAlive: true},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"SVG", true},
		{"gif", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if o.Mode != "vertical" || o.VizType != VizTree || o.Style != DefaultStyle || o.Scale != DefaultScale {
		t.Errorf("defaults = %+v", o)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("formats = %v", o.Formats)
	}
	if o.Layout.UnitWidth == 0 {
		t.Error("layout options should be defaulted")
	}

	again := o
	if err := again.ValidateForRender(); err != nil || again.Mode != o.Mode {
		t.Error("defaults should be idempotent")
	}
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"mode", Options{Mode: "spiral"}, errors.ErrCodeInvalidMode},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"viz", Options{VizType: "tower"}, errors.ErrCodeInvalidInput},
		{"style", Options{Style: "neon"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{}
	_ = o.ValidateForRender()
	plain := o.ArtifactKeyOpts(FormatSVG)

	o.Filter = &filter.Filter{ShowLiving: true, ShowDeceased: true, Query: " Eze "}
	withQuery := o.ArtifactKeyOpts(FormatSVG)
	if plain.Filter == withQuery.Filter {
		t.Error("filter should be part of the artifact key")
	}
	if !strings.Contains(withQuery.Filter, "q=eze") {
		t.Errorf("filter key = %q", withQuery.Filter)
	}
	if plain.Scale != 0 || o.ArtifactKeyOpts(FormatPNG).Scale != DefaultScale {
		t.Error("scale should only key PNG artifacts")
	}
}

func TestNewFamily(t *testing.T) {
	fam := NewFamily(records())
	if fam.Len() != 5 {
		t.Fatalf("people = %d", fam.Len())
	}
	if len(fam.Forest) != 1 || fam.Forest[0].Label() != "Obi Okafor & Ada Okafor" {
		t.Fatalf("forest = %+v", fam.Forest)
	}
	if len(fam.Hash) != 64 {
		t.Errorf("hash = %q", fam.Hash)
	}

	// Reordered optional noise that normalizes identically hashes identically.
	rs := records()
	rs[2].FatherChildren = []string{"ignored"}
	if NewFamily(rs).Hash != fam.Hash {
		t.Error("hash should cover normalized content only")
	}
	rs[0].FirstName = "Obiora"
	if NewFamily(rs).Hash == fam.Hash {
		t.Error("content change should change the hash")
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil, nil)
	fam, err := r.Load(ctx, store.NewMemory(records()))
	if err != nil {
		t.Fatal(err)
	}

	res, err := r.Execute(ctx, fam, Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.People != 5 || res.Stats.Units != 3 || res.Stats.Roots != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Layout.DatasetHash != fam.Hash {
		t.Error("layout should carry the dataset hash")
	}
	if len(res.Layout.Cards) != 5 {
		t.Errorf("cards = %d", len(res.Layout.Cards))
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg = %.40s", res.Artifacts[FormatSVG])
	}
	if _, err := tree.UnmarshalLayout(res.Artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if !bytes.Contains(res.Artifacts[FormatDOT], []byte("digraph")) {
		t.Error("dot artifact should be a digraph")
	}
}

func TestExecuteEmptyFamily(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), NewFamily(nil), Options{Mode: "radial"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Layout.IsEmpty() {
		t.Error("empty family should give an empty layout")
	}
	if len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("empty layout should still render a document")
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	fam := NewFamily(records())
	opts := Options{Mode: "horizontal", Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, fam, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, fam, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs")
	}

	filtered := opts
	filtered.Filter = &filter.Filter{ShowLiving: true, ShowDeceased: true, Query: "eze"}
	third, err := r.Execute(ctx, fam, filtered)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("filter change should reuse the layout only: %+v", third.CacheInfo)
	}

	radial := opts
	radial.Mode = "radial"
	fourth, err := r.Execute(ctx, fam, radial)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("mode change should miss the layout cache")
	}
}

func TestRenderWeights(t *testing.T) {
	fam := NewFamily(records())
	opts := Options{Filter: &filter.Filter{ShowLiving: true, ShowDeceased: false}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	l, err := GenerateLayout(fam, opts)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Render(context.Background(), l, fam.People, opts)
	if err != nil {
		t.Fatal(err)
	}
	// Obi is deceased and filtered out, so at least one element fades.
	if !bytes.Contains(out[FormatSVG], []byte(`opacity="0.20"`)) {
		t.Error("expected a faded card")
	}
}

func TestOpenJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family.json")
	if err := tree.WriteDatasetFile(tree.Dataset{People: records()}, path); err != nil {
		t.Fatal(err)
	}
	r := NewRunner(nil, nil, nil)
	fam, err := r.Open(context.Background(), store.Config{DSN: path}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if fam.Len() != 5 {
		t.Errorf("people = %d", fam.Len())
	}

	_, err = r.Open(context.Background(), store.Config{DSN: filepath.Join(t.TempDir(), "missing.json")}, Options{})
	if !errors.Is(err, errors.ErrCodeStoreUnavailable) {
		t.Errorf("missing file: %v", err)
	}
}

func TestOpenCachesDataset(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "family.db")

	db, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Put(ctx, records()); err != nil {
		t.Fatal(err)
	}
	db.Close()

	c, _ := cache.NewFileCache(filepath.Join(dir, "cache"))
	hooks := &cacheCounter{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r := NewRunner(c, nil, nil)
	cfg := store.Config{Driver: store.DriverSQLite, DSN: dbPath}
	first, err := r.Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}

	// A record added after the first open stays invisible until refresh.
	db, err = sqlite.Open(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Put(ctx, []person.Record{{ID: "ifeoma", FirstName: "Ifeoma", Gender: "FEMALE", FatherID: ptr("eze")}}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	second, err := r.Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.Hash != second.Hash || second.Len() != 5 {
		t.Errorf("cached dataset: %d people", second.Len())
	}
	if hooks.count("hit:dataset") != 1 {
		t.Errorf("dataset hits = %d", hooks.count("hit:dataset"))
	}

	fresh, err := r.Open(ctx, cfg, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Len() != 6 {
		t.Errorf("refresh should reload: %d people", fresh.Len())
	}
}

type cacheCounter struct {
	mu sync.Mutex
	n  map[string]int
}

func (c *cacheCounter) inc(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == nil {
		c.n = map[string]int{}
	}
	c.n[k]++
}

func (c *cacheCounter) count(k string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n[k]
}

func (c *cacheCounter) OnCacheHit(_ context.Context, layer string)  { c.inc("hit:" + layer) }
func (c *cacheCounter) OnCacheMiss(_ context.Context, layer string) { c.inc("miss:" + layer) }
func (c *cacheCounter) OnCacheSet(_ context.Context, layer string, _ int) {
	c.inc("set:" + layer)
}
