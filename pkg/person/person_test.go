package person

import (
	"slices"
	"testing"
)

func TestDisplayNameAndInitials(t *testing.T) {
	tests := []struct {
		first, last  string
		wantName     string
		wantInitials string
	}{
		{"Ivan", "Franko", "Ivan Franko", "IF"},
		{"ivan", "", "ivan", "I"},
		{"", "", "", ""},
		{" Lesya ", "Ukrainka", "Lesya Ukrainka", "LU"},
		{"Євген", "Коновалець", "Євген Коновалець", "ЄК"},
	}

	for _, tt := range tests {
		p := Person{FirstName: tt.first, LastName: tt.last}
		if got := p.DisplayName(); got != tt.wantName {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.wantName)
		}
		if got := p.Initials(); got != tt.wantInitials {
			t.Errorf("Initials(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.wantInitials)
		}
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name   string
		p      Person
		want   int
		wantOK bool
	}{
		{"living", Person{IsAlive: true, BirthYear: ptr(1990)}, 36, true},
		{"deceased", Person{BirthYear: ptr(1900), DeathYear: ptr(1970)}, 70, true},
		{"deceased without death year", Person{BirthYear: ptr(1900)}, 0, false},
		{"unknown birth", Person{IsAlive: true}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.p.Age(2026)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Age() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLifespan(t *testing.T) {
	if got := (Person{BirthYear: ptr(1901), DeathYear: ptr(1975)}).Lifespan(); got != "1901–1975" {
		t.Errorf("Lifespan = %q", got)
	}
	if got := (Person{BirthYear: ptr(1950)}).Lifespan(); got != "b. 1950" {
		t.Errorf("Lifespan = %q", got)
	}
	if got := (Person{}).Lifespan(); got != "" {
		t.Errorf("Lifespan = %q", got)
	}
}

func TestSort(t *testing.T) {
	people := []Person{
		{ID: "girl-1950", Gender: Female, BirthYear: ptr(1950)},
		{ID: "boy-unknown", Gender: Male},
		{ID: "boy-1960", Gender: Male, BirthYear: ptr(1960)},
		{ID: "other-1940", Gender: Other, BirthYear: ptr(1940)},
		{ID: "boy-1955", Gender: Male, BirthYear: ptr(1955)},
		{ID: "girl-unknown", Gender: Female},
	}

	got := IDs(Sorted(people))
	want := []string{"boy-1955", "boy-1960", "boy-unknown", "other-1940", "girl-1950", "girl-unknown"}
	if !slices.Equal(got, want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}
}

func TestSortStableForTies(t *testing.T) {
	people := []Person{
		{ID: "b", Gender: Female},
		{ID: "a", Gender: Female},
		{ID: "c", Gender: Other},
	}
	got := IDs(Sorted(people))
	if !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("Sorted = %v, want input order for ties", got)
	}
}
