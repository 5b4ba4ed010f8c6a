package forest

// Walk visits every unit depth-first, parents before children. Returning
// false from fn skips the unit's descendants.
func Walk(roots []*Unit, fn func(*Unit) bool) {
	for _, u := range roots {
		if fn(u) {
			Walk(u.Children, fn)
		}
	}
}

// Count returns the number of units and the number of people in the forest.
func Count(roots []*Unit) (units, people int) {
	Walk(roots, func(u *Unit) bool {
		units++
		people += len(u.IDs())
		return true
	})
	return units, people
}

// PersonIDs returns every person id placed in the forest, in walk order.
func PersonIDs(roots []*Unit) []string {
	var ids []string
	Walk(roots, func(u *Unit) bool {
		ids = append(ids, u.IDs()...)
		return true
	})
	return ids
}

// Find returns the unit holding the person id as primary or spouse.
func Find(roots []*Unit, id string) *Unit {
	var found *Unit
	Walk(roots, func(u *Unit) bool {
		if found != nil {
			return false
		}
		if u.Primary.ID == id || (u.Spouse != nil && u.Spouse.ID == id) {
			found = u
			return false
		}
		return true
	})
	return found
}

// Depth returns the number of generations in the forest.
func Depth(roots []*Unit) int {
	maxDepth := -1
	Walk(roots, func(u *Unit) bool {
		maxDepth = max(maxDepth, u.Depth)
		return true
	})
	return maxDepth + 1
}
