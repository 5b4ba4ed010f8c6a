package forest

import (
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/relations"
)

// Unit is a couple unit: a primary person, an optional spouse and the units
// of their children. Units are rebuilt from scratch on every data change.
type Unit struct {
	Primary  person.Person
	Spouse   *person.Person
	Children []*Unit
	Depth    int // distance from the forest root, 0 for roots
}

// HasSpouse reports whether the unit is a couple rather than a single person.
func (u *Unit) HasSpouse() bool { return u.Spouse != nil }

// IDs returns the person ids held by the unit itself, primary first.
func (u *Unit) IDs() []string {
	if u.Spouse == nil {
		return []string{u.Primary.ID}
	}
	return []string{u.Primary.ID, u.Spouse.ID}
}

// Label is "Primary & Spouse" or just the primary's display name.
func (u *Unit) Label() string {
	if u.Spouse == nil {
		return u.Primary.DisplayName()
	}
	return u.Primary.DisplayName() + " & " + u.Spouse.DisplayName()
}

// IsLeaf reports whether the unit has no child units.
func (u *Unit) IsLeaf() bool { return len(u.Children) == 0 }

// Build groups people into couple units and returns the forest roots.
// It never fails; an empty input yields an empty forest.
func Build(people []person.Person) []*Unit {
	return BuildIndex(relations.NewIndex(people))
}

// BuildIndex is Build over an existing index.
func BuildIndex(idx *relations.Index) []*Unit {
	b := &builder{idx: idx, placed: make(map[string]bool, idx.Len())}

	var roots []*Unit
	for _, p := range b.roots() {
		if b.placed[p.ID] {
			continue
		}
		roots = append(roots, b.unit(p, 0))
	}

	// Whoever the root pass could not reach.
	for _, p := range person.Sorted(idx.People()) {
		if b.placed[p.ID] {
			continue
		}
		roots = append(roots, b.unit(p, 0))
	}
	return roots
}

type builder struct {
	idx    *relations.Index
	placed map[string]bool
}

func (b *builder) roots() []person.Person {
	var out []person.Person
	for _, p := range b.idx.People() {
		if !b.idx.HasResolvableFather(p) {
			out = append(out, p)
		}
	}
	person.Sort(out)
	return out
}

func (b *builder) unit(p person.Person, depth int) *Unit {
	b.placed[p.ID] = true
	u := &Unit{Primary: p, Depth: depth}

	for _, s := range b.idx.SpouseCandidates(p) {
		if b.placed[s.ID] {
			continue
		}
		b.placed[s.ID] = true
		u.Spouse = &s
		break
	}

	parents := []string{p.ID}
	if u.Spouse != nil {
		parents = append(parents, u.Spouse.ID)
	}
	for _, c := range b.idx.ChildrenOf(parents...) {
		// A sibling subtree may already have claimed c, e.g. as a spouse.
		if b.placed[c.ID] {
			continue
		}
		u.Children = append(u.Children, b.unit(c, depth+1))
	}
	return u
}
