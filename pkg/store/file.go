package store

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/tree"
)

// FileStore reads records from a JSON file on every call, so edits to the
// file are picked up without reopening.
type FileStore struct {
	path string
}

// OpenFile returns a store over the JSON file at path. The file must exist.
func OpenFile(path string) (*FileStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) People(ctx context.Context) ([]person.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, err := tree.ReadDatasetFile(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", s.path)
	}
	return ds.People, nil
}

// Put merges records into the file by id, replacing existing ids in place
// and appending new ones.
func (s *FileStore) Put(ctx context.Context, records []person.Record) error {
	current, err := s.People(ctx)
	if err != nil {
		return err
	}
	if err := tree.WriteDatasetFile(tree.Dataset{People: merge(current, records)}, s.path); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Memory is an in-memory store, mainly for tests and one-shot pipelines.
type Memory struct {
	records []person.Record
}

// NewMemory returns a store holding a copy of records.
func NewMemory(records []person.Record) *Memory {
	return &Memory{records: slices.Clone(records)}
}

func (m *Memory) People(ctx context.Context) ([]person.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(m.records), nil
}

func (m *Memory) Put(_ context.Context, records []person.Record) error {
	m.records = merge(m.records, records)
	return nil
}

func (m *Memory) Close() error { return nil }

func merge(current, records []person.Record) []person.Record {
	out := slices.Clone(current)
	at := make(map[string]int, len(out))
	for i, r := range out {
		at[r.ID] = i
	}
	for _, r := range records {
		if i, ok := at[r.ID]; ok {
			out[i] = r
			continue
		}
		at[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}
