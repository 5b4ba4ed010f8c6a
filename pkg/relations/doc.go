// Package relations derives family relationships from a flat person set.
//
// Relationships are never stored. An [Index] over the normalized people
// answers them on demand by following father, mother and spouse references:
//
//	idx := relations.NewIndex(people)
//	rel, err := idx.DeriveExtended("taras")
//	for _, u := range rel.PaternalUncles {
//	    fmt.Println(u.Person.DisplayName(), u.SpouseLabel())
//	}
//
// # Rules
//
// Spouses are resolved in both directions: the focal person's own spouse
// reference plus every person whose spouse reference points at the focal
// person. The result is a set; several spouses are legal.
//
// Siblings are everyone else sharing the father OR the mother. Half-siblings
// through either side count, and the rule does not tell half from full
// siblings.
//
// References to ids outside the set are treated as absent. The only error is
// asking about a focal id that is not in the set.
package relations
