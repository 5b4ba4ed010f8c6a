package mongo

import (
	"context"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/matzehuels/kintree/pkg/person"
)

func TestDecodeDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"_id":           oid,
		"first_name":    "Ada",
		"last_name":     "Okafor",
		"gender":        "FEMALE",
		"is_alive":      true,
		"date_of_birth": "1950-02-03",
		"spouse_id":     "obi",
		"generation":    2,
		"family_clan":   nil,
	})
	if err != nil {
		t.Fatal(err)
	}

	var d document
	if err := bson.Unmarshal(raw, &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	r := toRecord(d)

	if r.ID != oid.Hex() {
		t.Errorf("ID = %q, want _id hex %q", r.ID, oid.Hex())
	}
	if r.FirstName != "Ada" || !r.IsAlive || r.Gender != "FEMALE" {
		t.Errorf("record = %+v", r)
	}
	if r.DateOfBirth == nil || *r.DateOfBirth != "1950-02-03" || r.SpouseID == nil || *r.SpouseID != "obi" {
		t.Errorf("optional fields lost: %+v", r)
	}
	if r.Generation == nil || *r.Generation != 2 {
		t.Errorf("generation = %v", r.Generation)
	}
	if r.FamilyClan != nil || r.FatherID != nil {
		t.Error("null and missing fields should decode as nil")
	}
}

func TestToRecordPrefersID(t *testing.T) {
	tests := []struct {
		name string
		d    document
		want string
	}{
		{"explicit id", document{OID: "x", Record: person.Record{ID: "p1"}}, "p1"},
		{"string _id", document{OID: "p2"}, "p2"},
		{"no id", document{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toRecord(tt.d).ID; got != tt.want {
				t.Errorf("ID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreIntegration(t *testing.T) {
	uri := os.Getenv("KINTREE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("KINTREE_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, uri, "kintree_test", "people_"+primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() {
		s.coll.Drop(ctx)
		s.Close()
	}()

	if err := s.Put(ctx, []person.Record{{ID: "a", FirstName: "Obi"}, {ID: "b", FirstName: "Ada"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.People(ctx)
	if err != nil || len(got) != 2 {
		t.Fatalf("People = %v, %v", got, err)
	}
}
