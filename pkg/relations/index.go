package relations

import (
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/person"
)

// Index is a read-only lookup structure over a person set.
// It is safe for concurrent use once built.
type Index struct {
	people []person.Person
	byID   map[string]int
}

// NewIndex builds an index over people. When ids repeat, the first
// occurrence wins and later duplicates are ignored.
func NewIndex(people []person.Person) *Index {
	idx := &Index{
		people: make([]person.Person, 0, len(people)),
		byID:   make(map[string]int, len(people)),
	}
	for _, p := range people {
		if _, dup := idx.byID[p.ID]; dup {
			continue
		}
		idx.byID[p.ID] = len(idx.people)
		idx.people = append(idx.people, p)
	}
	return idx
}

// People returns the indexed people in input order.
// The returned slice must not be modified.
func (idx *Index) People() []person.Person { return idx.people }

// Len returns the number of indexed people.
func (idx *Index) Len() int { return len(idx.people) }

// Get returns the person with the given id.
func (idx *Index) Get(id string) (person.Person, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return person.Person{}, false
	}
	return idx.people[i], true
}

// Lookup returns the person for the focal id, or a PERSON_NOT_FOUND error.
func (idx *Index) Lookup(id string) (person.Person, error) {
	p, ok := idx.Get(id)
	if !ok {
		return person.Person{}, errors.New(errors.ErrCodePersonNotFound, "no person with id %q", id)
	}
	return p, nil
}

// Resolve follows a nullable reference. A nil, empty or dangling reference
// resolves to nothing.
func (idx *Index) Resolve(ref *string) (person.Person, bool) {
	if ref == nil || *ref == "" {
		return person.Person{}, false
	}
	return idx.Get(*ref)
}

// Father returns the resolved father of p.
func (idx *Index) Father(p person.Person) (person.Person, bool) { return idx.parent(p, p.FatherID) }

// Mother returns the resolved mother of p.
func (idx *Index) Mother(p person.Person) (person.Person, bool) { return idx.parent(p, p.MotherID) }

// parent resolves a parent reference of p. A reference to p itself is absent.
func (idx *Index) parent(p person.Person, ref *string) (person.Person, bool) {
	if ref != nil && *ref == p.ID {
		return person.Person{}, false
	}
	return idx.Resolve(ref)
}

// HasResolvableFather reports whether p's father reference points into the set.
func (idx *Index) HasResolvableFather(p person.Person) bool {
	_, ok := idx.Father(p)
	return ok
}

// SpouseCandidates returns the spouse set of p in resolution order: p's own
// spouse reference first, then every person pointing at p, in input order.
// Duplicates and p itself are dropped. When several people claim p, the
// first in input order is the first candidate.
func (idx *Index) SpouseCandidates(p person.Person) []person.Person {
	var out []person.Person
	seen := map[string]bool{p.ID: true}

	if s, ok := idx.Resolve(p.SpouseID); ok && !seen[s.ID] {
		seen[s.ID] = true
		out = append(out, s)
	}
	for _, n := range idx.people {
		if seen[n.ID] || n.SpouseID == nil || *n.SpouseID != p.ID {
			continue
		}
		seen[n.ID] = true
		out = append(out, n)
	}
	return out
}

// ChildrenOf returns every person whose father or mother is one of parentIDs,
// in input order, sorted with [person.Compare]. Nobody is their own child.
func (idx *Index) ChildrenOf(parentIDs ...string) []person.Person {
	parents := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		if id != "" {
			parents[id] = true
		}
	}

	var out []person.Person
	for _, n := range idx.people {
		if !parents[n.ID] && isChildOf(n, parents) {
			out = append(out, n)
		}
	}
	person.Sort(out)
	return out
}

// SiblingsOf returns everyone other than p who shares p's resolved father or
// p's resolved mother, sorted with [person.Compare].
func (idx *Index) SiblingsOf(p person.Person) []person.Person {
	father, hasFather := idx.Father(p)
	mother, hasMother := idx.Mother(p)
	if !hasFather && !hasMother {
		return nil
	}

	var out []person.Person
	for _, n := range idx.people {
		if n.ID == p.ID || n.ID == father.ID || n.ID == mother.ID {
			continue
		}
		sameFather := hasFather && n.FatherID != nil && *n.FatherID == father.ID
		sameMother := hasMother && n.MotherID != nil && *n.MotherID == mother.ID
		if sameFather || sameMother {
			out = append(out, n)
		}
	}
	person.Sort(out)
	return out
}

func isChildOf(n person.Person, parents map[string]bool) bool {
	return (n.FatherID != nil && parents[*n.FatherID]) ||
		(n.MotherID != nil && parents[*n.MotherID])
}
