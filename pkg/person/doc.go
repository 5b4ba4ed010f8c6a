// Package person defines the person records kintree reads from a repository
// and the normalized in-memory node every other package works with.
//
// # Records and Persons
//
// A [Record] mirrors the repository boundary: nullable ISO dates, a free-form
// gender string and nullable father/mother/spouse references. [Normalize]
// turns records into [Person] values with year fields, a canonical [Gender]
// and a derived ChildrenIDs list.
//
// Normalization never fails. Unparseable dates become unknown years, unknown
// genders become [Other], and references are kept as given: a reference to an
// id that is not in the set is treated as absent by the consumers
// (relations, forest), not removed here.
//
//	people := person.Normalize(records)
//	for _, p := range people {
//	    fmt.Println(p.DisplayName(), p.Initials(), p.ChildrenIDs)
//	}
//
// # Ordering
//
// [Compare] is the single ordering rule used for children, siblings and
// forest roots: males first, then ascending birth year, with unknown birth
// years after every known year.
package person
