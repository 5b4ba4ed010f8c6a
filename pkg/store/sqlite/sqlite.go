// Package sqlite stores person records in a SQLite "people" table using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/kintree/pkg/person"
)

const schema = `
CREATE TABLE IF NOT EXISTS people (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	id            TEXT NOT NULL UNIQUE,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL DEFAULT '',
	date_of_birth TEXT,
	date_of_death TEXT,
	gender        TEXT NOT NULL DEFAULT 'OTHER',
	photo         TEXT,
	bio           TEXT,
	family_clan   TEXT,
	generation    INTEGER,
	is_alive      INTEGER NOT NULL DEFAULT 1,
	father_id     TEXT,
	mother_id     TEXT,
	spouse_id     TEXT
)`

// Father, mother and spouse references are deliberately not foreign keys:
// dangling references are legal data.

const columns = `id, first_name, last_name, date_of_birth, date_of_death, gender,
	photo, bio, family_clan, generation, is_alive, father_id, mother_id, spouse_id`

// Store wraps a SQLite database connection.
type Store struct {
	conn *sql.DB
	Path string
}

// Open opens (creating if needed) the database at path with WAL mode
// enabled and ensures the people table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{conn: conn, Path: path}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// scanRecord scans a row into a Record. The row must have all columns in standard order.
func scanRecord(scanner interface{ Scan(dest ...any) error }) (person.Record, error) {
	var r person.Record
	err := scanner.Scan(
		&r.ID, &r.FirstName, &r.LastName, &r.DateOfBirth, &r.DateOfDeath, &r.Gender,
		&r.Photo, &r.Bio, &r.FamilyClan, &r.Generation, &r.IsAlive,
		&r.FatherID, &r.MotherID, &r.SpouseID,
	)
	return r, err
}

// People returns every record in insertion order.
func (s *Store) People(ctx context.Context) ([]person.Record, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+columns+` FROM people ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []person.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Person returns a single record by id, or sql.ErrNoRows.
func (s *Store) Person(ctx context.Context, id string) (person.Record, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+columns+` FROM people WHERE id = ?`, id)
	return scanRecord(row)
}

// Put inserts records, replacing existing rows with the same id in place.
// All records are written in one transaction.
func (s *Store) Put(ctx context.Context, records []person.Record) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO people (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name, last_name = excluded.last_name,
			date_of_birth = excluded.date_of_birth, date_of_death = excluded.date_of_death,
			gender = excluded.gender, photo = excluded.photo, bio = excluded.bio,
			family_clan = excluded.family_clan, generation = excluded.generation,
			is_alive = excluded.is_alive, father_id = excluded.father_id,
			mother_id = excluded.mother_id, spouse_id = excluded.spouse_id`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.FirstName, r.LastName, r.DateOfBirth, r.DateOfDeath, r.Gender,
			r.Photo, r.Bio, r.FamilyClan, r.Generation, r.IsAlive,
			r.FatherID, r.MotherID, r.SpouseID,
		); err != nil {
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&n)
	return n, err
}
