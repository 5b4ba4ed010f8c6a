package relations

import (
	"github.com/matzehuels/kintree/pkg/person"
)

// Relations is the relationship detail for one focal person.
// Missing parents are nil and missing lists are empty, never errors.
type Relations struct {
	Focal         person.Person   `json:"focal"`
	Father        *person.Person  `json:"father,omitempty"`
	Mother        *person.Person  `json:"mother,omitempty"`
	Spouses       []person.Person `json:"spouses"`
	Sons          []person.Person `json:"sons"`
	Daughters     []person.Person `json:"daughters"`
	OtherChildren []person.Person `json:"otherChildren"`
	Siblings      []person.Person `json:"siblings"`

	// Avuncular relations, populated by DeriveExtended only.
	PaternalUncles []Avuncular `json:"paternalUncles,omitempty"`
	PaternalAunts  []Avuncular `json:"paternalAunts,omitempty"`
	MaternalUncles []Avuncular `json:"maternalUncles,omitempty"`
	MaternalAunts  []Avuncular `json:"maternalAunts,omitempty"`
}

// Children returns sons, daughters and other children in that order.
func (r Relations) Children() []person.Person {
	out := make([]person.Person, 0, len(r.Sons)+len(r.Daughters)+len(r.OtherChildren))
	out = append(out, r.Sons...)
	out = append(out, r.Daughters...)
	return append(out, r.OtherChildren...)
}

// Avuncular is an uncle or aunt together with their resolved spouses.
type Avuncular struct {
	Person  person.Person   `json:"person"`
	Spouses []person.Person `json:"spouses,omitempty"`
}

// SpouseLabel names the relation of the first spouse to the focal person,
// "uncle's wife" or "aunt's husband", or "" when there is no spouse.
func (a Avuncular) SpouseLabel() string {
	if len(a.Spouses) == 0 {
		return ""
	}
	if a.Person.IsMale() {
		return "uncle's " + partnerNoun(a.Spouses[0])
	}
	return "aunt's " + partnerNoun(a.Spouses[0])
}

func partnerNoun(p person.Person) string {
	switch p.Gender {
	case person.Male:
		return "husband"
	case person.Female:
		return "wife"
	default:
		return "spouse"
	}
}

// Derive returns parents, spouses, children and siblings of the focal person.
func (idx *Index) Derive(focalID string) (Relations, error) {
	focal, err := idx.Lookup(focalID)
	if err != nil {
		return Relations{}, err
	}
	return idx.derive(focal), nil
}

// DeriveExtended is Derive plus paternal and maternal uncles and aunts,
// each with their spouses. A side is only populated when that parent resolves.
func (idx *Index) DeriveExtended(focalID string) (Relations, error) {
	focal, err := idx.Lookup(focalID)
	if err != nil {
		return Relations{}, err
	}

	rel := idx.derive(focal)
	if rel.Father != nil {
		rel.PaternalUncles, rel.PaternalAunts = idx.avuncular(*rel.Father)
	}
	if rel.Mother != nil {
		rel.MaternalUncles, rel.MaternalAunts = idx.avuncular(*rel.Mother)
	}
	return rel, nil
}

func (idx *Index) derive(focal person.Person) Relations {
	rel := Relations{
		Focal:         focal,
		Spouses:       orEmpty(idx.SpouseCandidates(focal)),
		Sons:          []person.Person{},
		Daughters:     []person.Person{},
		OtherChildren: []person.Person{},
		Siblings:      orEmpty(idx.SiblingsOf(focal)),
	}
	if f, ok := idx.Father(focal); ok {
		rel.Father = &f
	}
	if m, ok := idx.Mother(focal); ok {
		rel.Mother = &m
	}

	for _, c := range idx.ChildrenOf(focal.ID) {
		switch c.Gender {
		case person.Male:
			rel.Sons = append(rel.Sons, c)
		case person.Female:
			rel.Daughters = append(rel.Daughters, c)
		default:
			rel.OtherChildren = append(rel.OtherChildren, c)
		}
	}
	return rel
}

func orEmpty(people []person.Person) []person.Person {
	if people == nil {
		return []person.Person{}
	}
	return people
}

// avuncular splits the siblings of parent into uncles (male) and aunts (the rest).
func (idx *Index) avuncular(parent person.Person) (uncles, aunts []Avuncular) {
	for _, s := range idx.SiblingsOf(parent) {
		a := Avuncular{Person: s, Spouses: idx.SpouseCandidates(s)}
		if s.IsMale() {
			uncles = append(uncles, a)
		} else {
			aunts = append(aunts, a)
		}
	}
	return uncles, aunts
}
