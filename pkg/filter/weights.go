package filter

import (
	"strings"

	"github.com/matzehuels/kintree/pkg/person"
)

// Opacity levels used by [Weights].
const (
	OpacityFull      = 1.0
	OpacityFiltered  = 0.2
	OpacityUnmatched = 0.35
)

// Weight is the visual hint for one person.
type Weight struct {
	Opacity     float64 `json:"opacity"`
	Highlighted bool    `json:"highlighted"`
}

// Weights composes the structural and search match-sets of f into one hint
// per person. People outside the structural set fade most. With an active
// query, people outside the search set fade less and matches are
// highlighted. A blank query dims nobody.
func Weights(people []person.Person, f Filter) map[string]Weight {
	matching := MatchingIDs(people, f)
	found := SearchIDs(people, f.Query)
	searching := strings.TrimSpace(f.Query) != ""

	out := make(map[string]Weight, len(people))
	for _, p := range people {
		w := Weight{Opacity: OpacityFull}
		switch {
		case !matching.Has(p.ID):
			w.Opacity = OpacityFiltered
		case searching && !found.Has(p.ID):
			w.Opacity = OpacityUnmatched
		}
		w.Highlighted = searching && found.Has(p.ID)
		out[p.ID] = w
	}
	return out
}

// ParseFilter builds a filter from loose string parameters as they arrive
// from flags or query strings. Blank values leave a dimension unset; living
// and deceased default to shown.
func ParseFilter(clan, generation, gender, living, deceased, query string) (Filter, error) {
	f := All()
	f.Query = query
	if s := strings.TrimSpace(clan); s != "" {
		f.Clan = &s
	}
	if s := strings.TrimSpace(generation); s != "" {
		g, err := parseInt(s)
		if err != nil {
			return Filter{}, err
		}
		f.Generation = &g
	}
	if s := strings.TrimSpace(gender); s != "" {
		g := person.ParseGender(s)
		f.Gender = &g
	}
	var err error
	if f.ShowLiving, err = parseBool(living, true); err != nil {
		return Filter{}, err
	}
	if f.ShowDeceased, err = parseBool(deceased, true); err != nil {
		return Filter{}, err
	}
	return f, nil
}
