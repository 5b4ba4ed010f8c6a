package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/forest"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/relations"
	"github.com/matzehuels/kintree/pkg/store"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Family is a normalized person set together with its lookup index and
// couple forest. It is immutable once built and safe for concurrent reads.
type Family struct {
	People []person.Person
	Index  *relations.Index
	Forest []*forest.Unit
	// Hash identifies the normalized content; it keys cached layouts.
	Hash string
}

// NewFamily normalizes records and builds the couple forest.
// Repeated ids keep their first occurrence.
func NewFamily(records []person.Record) *Family {
	idx := relations.NewIndex(person.Normalize(records))
	people := idx.People()

	data, _ := marshalDataset(tree.Dataset{People: person.ToRecords(people)})
	return &Family{
		People: people,
		Index:  idx,
		Forest: forest.BuildIndex(idx),
		Hash:   cache.Hash(data),
	}
}

func marshalDataset(ds tree.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := tree.WriteDataset(ds, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Len returns the number of people.
func (f *Family) Len() int { return len(f.People) }

// Records returns the normalized records, suitable for re-import.
func (f *Family) Records() []person.Record { return person.ToRecords(f.People) }

// Load reads every record from s and builds a family.
func Load(ctx context.Context, s store.Store) (*Family, error) {
	records, err := s.People(ctx)
	if err != nil {
		return nil, err
	}
	return NewFamily(records), nil
}
