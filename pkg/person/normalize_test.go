package person

import (
	"reflect"
	"slices"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeYears(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		wantBirth *int
		wantDeath *int
	}{
		{
			name:      "iso dates deceased",
			rec:       Record{ID: "a", DateOfBirth: ptr("1901-03-04"), DateOfDeath: ptr("1975-12-01")},
			wantBirth: ptr(1901),
			wantDeath: ptr(1975),
		},
		{
			name:      "living drops death year",
			rec:       Record{ID: "a", IsAlive: true, DateOfBirth: ptr("1980-01-01"), DateOfDeath: ptr("2001-01-01")},
			wantBirth: ptr(1980),
		},
		{
			name:      "timestamp",
			rec:       Record{ID: "a", IsAlive: true, DateOfBirth: ptr("1950-06-15T00:00:00Z")},
			wantBirth: ptr(1950),
		},
		{
			name:      "bare year",
			rec:       Record{ID: "a", IsAlive: true, DateOfBirth: ptr("1899")},
			wantBirth: ptr(1899),
		},
		{
			name: "garbage date",
			rec:  Record{ID: "a", DateOfBirth: ptr("someday"), DateOfDeath: ptr("")},
		},
		{
			name: "absent dates",
			rec:  Record{ID: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]Record{tt.rec})[0]
			if !reflect.DeepEqual(got.BirthYear, tt.wantBirth) {
				t.Errorf("BirthYear = %v, want %v", deref(got.BirthYear), deref(tt.wantBirth))
			}
			if !reflect.DeepEqual(got.DeathYear, tt.wantDeath) {
				t.Errorf("DeathYear = %v, want %v", deref(got.DeathYear), deref(tt.wantDeath))
			}
		})
	}
}

func TestNormalizeChildren(t *testing.T) {
	records := []Record{
		{ID: "dad", Gender: "MALE"},
		{ID: "mum", Gender: "FEMALE"},
		{ID: "c1", FatherID: ptr("dad"), MotherID: ptr("mum")},
		{ID: "c2", FatherID: ptr("dad")},
		{ID: "c3", MotherID: ptr("mum")},
		{ID: "self", FatherID: ptr("self")},
	}

	byID := map[string]Person{}
	for _, p := range Normalize(records) {
		byID[p.ID] = p
	}

	if got, want := byID["dad"].ChildrenIDs, []string{"c1", "c2"}; !slices.Equal(got, want) {
		t.Errorf("dad children = %v, want %v", got, want)
	}
	if got, want := byID["mum"].ChildrenIDs, []string{"c1", "c3"}; !slices.Equal(got, want) {
		t.Errorf("mum children = %v, want %v", got, want)
	}
	if got := byID["self"].ChildrenIDs; len(got) != 0 {
		t.Errorf("self-referencing record lists itself as child: %v", got)
	}
}

func TestNormalizeSameParentTwice(t *testing.T) {
	records := []Record{
		{ID: "p"},
		{ID: "c", FatherID: ptr("p"), MotherID: ptr("p")},
	}
	got := Normalize(records)[0].ChildrenIDs
	if !slices.Equal(got, []string{"c"}) {
		t.Errorf("ChildrenIDs = %v, want [c]", got)
	}
}

func TestNormalizeGender(t *testing.T) {
	tests := map[string]Gender{
		"MALE": Male, "male": Male, "M": Male,
		"FEMALE": Female, " female ": Female, "f": Female,
		"OTHER": Other, "": Other, "unknown": Other,
	}
	for in, want := range tests {
		if got := ParseGender(in); got != want {
			t.Errorf("ParseGender(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeEmptyOptionalFields(t *testing.T) {
	got := Normalize([]Record{{ID: "a", FamilyClan: ptr(""), Bio: ptr("  "), SpouseID: ptr("")}})[0]
	if got.FamilyClan != nil || got.Bio != nil || got.SpouseID != nil {
		t.Errorf("blank optional fields should normalize to nil: %+v", got)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got := Normalize(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty slice", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	records := []Record{
		{ID: "a", FirstName: "Ivan", LastName: "Petrenko", Gender: "m", DateOfBirth: ptr("1920-02-02"), DateOfDeath: ptr("1990-01-01"), FamilyClan: ptr("Petrenko"), Generation: ptr(1)},
		{ID: "b", FirstName: "Olha", LastName: "Petrenko", Gender: "female", SpouseID: ptr("a"), IsAlive: false},
		{ID: "c", FirstName: "Taras", LastName: "Petrenko", Gender: "MALE", FatherID: ptr("a"), MotherID: ptr("b"), IsAlive: true, DateOfBirth: ptr("1950")},
		{ID: "d", FirstName: "Nina", LastName: "", Gender: "x", FatherID: ptr("missing"), IsAlive: true, Bio: ptr("bio")},
	}

	once := Normalize(records)
	twice := Normalize(ToRecords(once))

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
