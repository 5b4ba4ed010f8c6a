package person

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when extracting a year from a date string.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"2006",
}

// Normalize converts repository records into people.
//
// Years are the year component of the birth and death dates; an absent or
// unparseable date yields an unknown year. The death year is only kept for
// people who are not alive. ChildrenIDs is the deduplicated list of records
// whose father or mother reference equals the person's id.
//
// Normalize never fails and returns an empty, non-nil slice for no records.
func Normalize(records []Record) []Person {
	children := make(map[string][]string, len(records))
	seen := make(map[string]map[string]bool, len(records))

	addChild := func(parent *string, child string) {
		if parent == nil || *parent == "" || *parent == child {
			return
		}
		if seen[*parent] == nil {
			seen[*parent] = make(map[string]bool)
		}
		if seen[*parent][child] {
			return
		}
		seen[*parent][child] = true
		children[*parent] = append(children[*parent], child)
	}

	for _, r := range records {
		addChild(r.FatherID, r.ID)
		addChild(r.MotherID, r.ID)
	}

	people := make([]Person, 0, len(records))
	for _, r := range records {
		p := Person{
			ID:          r.ID,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			Gender:      ParseGender(r.Gender),
			BirthYear:   parseYear(r.DateOfBirth),
			IsAlive:     r.IsAlive,
			FamilyClan:  nonEmpty(r.FamilyClan),
			Generation:  r.Generation,
			Bio:         nonEmpty(r.Bio),
			Photo:       nonEmpty(r.Photo),
			FatherID:    nonEmpty(r.FatherID),
			MotherID:    nonEmpty(r.MotherID),
			SpouseID:    nonEmpty(r.SpouseID),
			ChildrenIDs: children[r.ID],
			DateOfBirth: nonEmpty(r.DateOfBirth),
			DateOfDeath: nonEmpty(r.DateOfDeath),
		}
		if !r.IsAlive {
			p.DeathYear = parseYear(r.DateOfDeath)
		}
		people = append(people, p)
	}
	return people
}

// parseYear extracts the year component of an ISO date.
func parseYear(s *string) *int {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			y := t.Year()
			return &y
		}
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }
