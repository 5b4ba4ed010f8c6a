package person

import (
	"cmp"
	"slices"
)

// UnknownBirthYear is the sort key used for people without a birth year,
// placing them after every realistic known year.
const UnknownBirthYear = 9999

// Compare orders people male before non-male, then by ascending birth year.
// Unknown birth years sort as UnknownBirthYear. Ties compare equal so stable
// sorts keep input order.
func Compare(a, b Person) int {
	if a.IsMale() != b.IsMale() {
		if a.IsMale() {
			return -1
		}
		return 1
	}
	return cmp.Compare(birthKey(a), birthKey(b))
}

// Sort orders people in place with [Compare], keeping input order for ties.
func Sort(people []Person) {
	slices.SortStableFunc(people, Compare)
}

// Sorted returns a sorted copy of people.
func Sorted(people []Person) []Person {
	out := slices.Clone(people)
	Sort(out)
	return out
}

func birthKey(p Person) int {
	if p.BirthYear == nil {
		return UnknownBirthYear
	}
	return *p.BirthYear
}
