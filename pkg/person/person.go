package person

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Gender is the canonical gender of a person.
type Gender string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
	Other  Gender = "OTHER"
)

// ParseGender maps a repository gender string onto a Gender.
// Matching is case-insensitive and accepts the single-letter forms;
// anything else is Other.
func ParseGender(s string) Gender {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE", "M":
		return Male
	case "FEMALE", "F":
		return Female
	default:
		return Other
	}
}

// Record is a person as supplied by a repository adapter.
// Only ID, FirstName, LastName, Gender and IsAlive are required; every other
// field may be absent.
type Record struct {
	ID          string  `json:"id" bson:"id"`
	FirstName   string  `json:"firstName" bson:"first_name"`
	LastName    string  `json:"lastName" bson:"last_name"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" bson:"date_of_birth,omitempty"`
	DateOfDeath *string `json:"dateOfDeath,omitempty" bson:"date_of_death,omitempty"`
	Gender      string  `json:"gender" bson:"gender"`
	Photo       *string `json:"photo,omitempty" bson:"photo,omitempty"`
	Bio         *string `json:"bio,omitempty" bson:"bio,omitempty"`
	FamilyClan  *string `json:"familyClan,omitempty" bson:"family_clan,omitempty"`
	Generation  *int    `json:"generation,omitempty" bson:"generation,omitempty"`
	IsAlive     bool    `json:"isAlive" bson:"is_alive"`
	FatherID    *string `json:"fatherId,omitempty" bson:"father_id,omitempty"`
	MotherID    *string `json:"motherId,omitempty" bson:"mother_id,omitempty"`
	SpouseID    *string `json:"spouseId,omitempty" bson:"spouse_id,omitempty"`

	// Pre-joined child ids from each parental side. Informational only:
	// Normalize derives children from the father/mother links instead.
	FatherChildren []string `json:"fatherChildren,omitempty" bson:"father_children,omitempty"`
	MotherChildren []string `json:"motherChildren,omitempty" bson:"mother_children,omitempty"`
}

// Person is the normalized node used by the resolver, forest builder and layout.
type Person struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Gender     Gender  `json:"gender"`
	BirthYear  *int    `json:"birthYear,omitempty"`
	DeathYear  *int    `json:"deathYear,omitempty"`
	IsAlive    bool    `json:"isAlive"`
	FamilyClan *string `json:"familyClan,omitempty"`
	Generation *int    `json:"generation,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Photo      *string `json:"photo,omitempty"`
	FatherID   *string `json:"fatherId,omitempty"`
	MotherID   *string `json:"motherId,omitempty"`
	SpouseID   *string `json:"spouseId,omitempty"`

	// ChildrenIDs lists every person whose father or mother is this person,
	// in input order, without duplicates.
	ChildrenIDs []string `json:"childrenIds,omitempty"`

	// Source dates, kept so Record can reproduce the input.
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	DateOfDeath *string `json:"dateOfDeath,omitempty"`
}

// DisplayName returns the first and last name joined by a space.
func (p Person) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Initials returns the upper-cased first letters of the first and last name.
func (p Person) Initials() string {
	var b strings.Builder
	for _, s := range []string{p.FirstName, p.LastName} {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(s)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Age returns the age in years: death year minus birth year for the deceased,
// currentYear minus birth year for the living. ok is false when the birth
// year is unknown, or the person is deceased without a known death year.
func (p Person) Age(currentYear int) (age int, ok bool) {
	if p.BirthYear == nil {
		return 0, false
	}
	if !p.IsAlive {
		if p.DeathYear == nil {
			return 0, false
		}
		return *p.DeathYear - *p.BirthYear, true
	}
	return currentYear - *p.BirthYear, true
}

// Lifespan formats the known years as "1901–1975", "b. 1950" or "".
func (p Person) Lifespan() string {
	switch {
	case p.BirthYear != nil && p.DeathYear != nil:
		return itoa(*p.BirthYear) + "–" + itoa(*p.DeathYear)
	case p.BirthYear != nil:
		return "b. " + itoa(*p.BirthYear)
	case p.DeathYear != nil:
		return "d. " + itoa(*p.DeathYear)
	default:
		return ""
	}
}

// IsMale reports whether the person sorts into the male-first group.
func (p Person) IsMale() bool { return p.Gender == Male }

// HasFather reports whether the person carries a father reference.
// Whether it resolves depends on the set the person is in.
func (p Person) HasFather() bool { return p.FatherID != nil && *p.FatherID != "" }

// Record converts the person back into a repository record.
// Normalize(ToRecords(Normalize(rs))) equals Normalize(rs).
func (p Person) Record() Record {
	return Record{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		DateOfDeath: p.DateOfDeath,
		Gender:      string(p.Gender),
		Photo:       p.Photo,
		Bio:         p.Bio,
		FamilyClan:  p.FamilyClan,
		Generation:  p.Generation,
		IsAlive:     p.IsAlive,
		FatherID:    p.FatherID,
		MotherID:    p.MotherID,
		SpouseID:    p.SpouseID,
	}
}

// ToRecords converts people back into records.
func ToRecords(people []Person) []Record {
	out := make([]Record, len(people))
	for i, p := range people {
		out[i] = p.Record()
	}
	return out
}

// IDs returns the ids of people in order.
func IDs(people []Person) []string {
	ids := make([]string, len(people))
	for i, p := range people {
		ids[i] = p.ID
	}
	return ids
}
