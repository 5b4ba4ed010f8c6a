// Package filter builds the match-sets that drive node opacity and
// highlighting. It is independent of layout.
//
// Two sets are derived from the same person set and never merged: the
// structural set from a [Filter] and the free-text set from a search query.
// [Weights] composes them into per-person visual hints.
package filter

import (
	"strings"

	"github.com/matzehuels/kintree/pkg/person"
)

// Set is a set of person ids.
type Set map[string]struct{}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set.
func (s Set) Len() int { return len(s) }

// Filter is a structural query. Nil fields match everyone.
type Filter struct {
	Clan         *string        `json:"clan,omitempty"`
	Generation   *int           `json:"generation,omitempty"`
	Gender       *person.Gender `json:"gender,omitempty"`
	ShowLiving   bool           `json:"showLiving"`
	ShowDeceased bool           `json:"showDeceased"`
	Query        string         `json:"query,omitempty"`
}

// All returns a filter that matches everyone.
func All() Filter { return Filter{ShowLiving: true, ShowDeceased: true} }

// Matches reports whether p passes the structural part of the filter.
// The Query field is not consulted.
func (f Filter) Matches(p person.Person) bool {
	if f.Clan != nil && (p.FamilyClan == nil || *p.FamilyClan != *f.Clan) {
		return false
	}
	if f.Generation != nil && (p.Generation == nil || *p.Generation != *f.Generation) {
		return false
	}
	if f.Gender != nil && p.Gender != *f.Gender {
		return false
	}
	if p.IsAlive {
		return f.ShowLiving
	}
	return f.ShowDeceased
}

// MatchingIDs returns the ids of people passing the structural filter.
func MatchingIDs(people []person.Person, f Filter) Set {
	out := make(Set)
	for _, p := range people {
		if f.Matches(p) {
			out[p.ID] = struct{}{}
		}
	}
	return out
}

// SearchIDs returns the ids of people whose display name contains query,
// case-insensitively. A blank query matches everyone.
func SearchIDs(people []person.Person, query string) Set {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make(Set, len(people))
	for _, p := range people {
		if q == "" || strings.Contains(strings.ToLower(p.DisplayName()), q) {
			out[p.ID] = struct{}{}
		}
	}
	return out
}

// Search returns the matching people in input order.
func Search(people []person.Person, query string) []person.Person {
	ids := SearchIDs(people, query)
	var out []person.Person
	for _, p := range people {
		if ids.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}
