// Package store provides person repository adapters.
//
// A [Store] supplies the flat person records the rest of kintree works on.
// Three backends are available:
//
//   - JSON file ([OpenFile]): an array of records or {"people": [...]}
//   - SQLite (package sqlite): a "people" table
//   - MongoDB (package mongo): a "people" collection
//
// [Open] picks the backend from a [Config]:
//
//	s, err := store.Open(ctx, store.Config{Driver: "sqlite", DSN: "family.db"})
//	defer s.Close()
//	records, err := s.People(ctx)
//
// Stores only read. Records are returned as stored; normalization is the
// caller's job.
package store

import (
	"context"
	"strings"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/store/mongo"
	"github.com/matzehuels/kintree/pkg/store/sqlite"
)

// Store supplies person records.
type Store interface {
	// People returns every record in storage order.
	People(ctx context.Context) ([]person.Record, error)
	// Close releases the backend.
	Close() error
}

// Writer is implemented by stores that can persist records.
type Writer interface {
	Store
	// Put inserts or replaces records by id.
	Put(ctx context.Context, records []person.Record) error
}

// Drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config selects and addresses a backend.
type Config struct {
	Driver     string `toml:"driver"`
	DSN        string `toml:"dsn"`        // file path, sqlite path or mongodb:// URI
	Database   string `toml:"database"`   // mongo only
	Collection string `toml:"collection"` // mongo only
}

// Validate checks that the driver is known and a DSN is given.
func (c Config) Validate() error {
	switch c.driver() {
	case DriverJSON, DriverSQLite, DriverMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store driver %q (want json, sqlite or mongo)", c.Driver)
	}
	if strings.TrimSpace(c.DSN) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store dsn is required")
	}
	return nil
}

func (c Config) driver() string {
	if c.Driver == "" {
		return DriverJSON
	}
	return strings.ToLower(c.Driver)
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		s   Store
		err error
	)
	switch cfg.driver() {
	case DriverSQLite:
		s, err = sqlite.Open(ctx, cfg.DSN)
	case DriverMongo:
		s, err = mongo.Open(ctx, cfg.DSN, cfg.Database, cfg.Collection)
	default:
		s, err = OpenFile(cfg.DSN)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "open %s store", cfg.driver())
	}
	return s, nil
}
