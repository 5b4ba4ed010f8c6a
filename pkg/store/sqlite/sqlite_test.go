package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matzehuels/kintree/pkg/person"
)

func ptr[T any](v T) *T { return &v }

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "family.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndPeople(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	in := []person.Record{
		{ID: "a", FirstName: "Obi", LastName: "Okafor", Gender: "MALE", DateOfBirth: ptr("1920-03-01"), DateOfDeath: ptr("1990-07-12"), Generation: ptr(1)},
		{ID: "b", FirstName: "Ada", LastName: "Okafor", Gender: "FEMALE", IsAlive: true, SpouseID: ptr("a"), FamilyClan: ptr("Okafor"), Bio: ptr("Teacher")},
		{ID: "c", FirstName: "Eze", Gender: "MALE", IsAlive: true, FatherID: ptr("a"), MotherID: ptr("ghost")},
	}
	if err := s.Put(ctx, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.People(ctx)
	if err != nil {
		t.Fatalf("People: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Errorf("order = %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}

	a := got[0]
	if a.DateOfBirth == nil || *a.DateOfBirth != "1920-03-01" || a.Generation == nil || *a.Generation != 1 || a.IsAlive {
		t.Errorf("a = %+v", a)
	}
	if a.SpouseID != nil || a.Photo != nil {
		t.Error("NULL columns should scan as nil")
	}
	b := got[1]
	if !b.IsAlive || b.SpouseID == nil || *b.SpouseID != "a" || *b.FamilyClan != "Okafor" {
		t.Errorf("b = %+v", b)
	}
	if got[2].MotherID == nil || *got[2].MotherID != "ghost" {
		t.Error("dangling references must be stored as given")
	}
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	s.Put(ctx, []person.Record{{ID: "a", FirstName: "Obi"}, {ID: "b", FirstName: "Ada"}})
	if err := s.Put(ctx, []person.Record{{ID: "a", FirstName: "Obinna", IsAlive: true}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	n, _ := s.Count(ctx)
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
	a, err := s.Person(ctx, "a")
	if err != nil || a.FirstName != "Obinna" || !a.IsAlive {
		t.Errorf("Person(a) = %+v, %v", a, err)
	}
	got, _ := s.People(ctx)
	if got[0].ID != "a" {
		t.Error("replacing a record should keep its position")
	}
}

func TestPersonNotFound(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Person(context.Background(), "nobody"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v, want sql.ErrNoRows", err)
	}
}

func TestEmpty(t *testing.T) {
	got, err := openTemp(t).People(context.Background())
	if err != nil || len(got) != 0 {
		t.Errorf("People on empty db = %v, %v", got, err)
	}
}
