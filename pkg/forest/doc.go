// Package forest groups people into couple units and links them into a
// forest of family trees.
//
// A [Unit] is one person plus an inferred spouse, the atomic node of a drawn
// family tree. [Build] reconstructs the forest from the loose father, mother
// and spouse references of a person set:
//
//	units := forest.Build(people)
//	forest.Walk(units, func(u *forest.Unit) bool {
//	    fmt.Println(strings.Repeat("  ", u.Depth), u.Label())
//	    return true
//	})
//
// # Roots
//
// People without a resolvable father are roots, ordered with
// [person.Compare]. Anyone not reached from those roots (for example both
// members of a father cycle) is rooted afterwards in the same order, so every
// person appears in exactly one unit.
//
// # Placement
//
// A person is marked placed before the builder recurses, and the builder
// only visits unplaced people. A spouse candidate that is already placed is
// skipped. Reference cycles therefore terminate: whoever is reached first
// keeps the relationship and the cycle partner becomes a root elsewhere.
package forest
