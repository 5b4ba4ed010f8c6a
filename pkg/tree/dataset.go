package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/kintree/pkg/person"
)

// =============================================================================
// Dataset - Person Records
// =============================================================================

// Dataset is the serialization format for a person set as supplied by a
// repository.
type Dataset struct {
	People []person.Record `json:"people" bson:"people"`
}

// ReadDataset decodes a dataset from r. Both a bare JSON array of records and
// an object with a "people" array are accepted.
func ReadDataset(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return UnmarshalDataset(data)
}

// UnmarshalDataset decodes dataset bytes. See [ReadDataset].
func UnmarshalDataset(data []byte) (Dataset, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Dataset{}, nil
	}

	var ds Dataset
	if data[0] == '[' {
		if err := json.Unmarshal(data, &ds.People); err != nil {
			return Dataset{}, fmt.Errorf("decode people array: %w", err)
		}
		return ds, nil
	}
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// WriteDataset encodes ds as pretty-printed JSON to w.
func WriteDataset(ds Dataset, w io.Writer) error {
	if ds.People == nil {
		ds.People = []person.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}

// ReadDatasetFile reads a dataset from a JSON file.
func ReadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return ReadDataset(f)
}

// WriteDatasetFile writes a dataset to a JSON file.
func WriteDatasetFile(ds Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDataset(ds, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
