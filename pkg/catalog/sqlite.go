package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/odvcencio/gitlet/pkg/catalog/migrations"
	"github.com/odvcencio/gitlet/pkg/object"
)

// SQLiteIndex stores the catalog in a SQLite database.
type SQLiteIndex struct {
	db   *sql.DB
	path string
}

// NewSQLiteIndex opens (creating if needed) the database at path and
// migrates it to the latest schema. path may be ":memory:".
func NewSQLiteIndex(path string) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("catalog open: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog open %s: %w", path, err)
	}
	return &SQLiteIndex{db: db, path: path}, nil
}

func (s *SQLiteIndex) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO commits (hash, message, timestamp) VALUES (?, ?, ?)`,
		string(e.Hash), e.Message, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("catalog record %s: %w", e.Hash, err)
	}
	return nil
}

func (s *SQLiteIndex) All() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT hash, message, timestamp FROM commits ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var h, msg, ts string
		if err := rows.Scan(&h, &msg, &ts); err != nil {
			return nil, fmt.Errorf("catalog list: %w", err)
		}
		out = append(out, Entry{Hash: object.Hash(h), Message: msg, Timestamp: ts})
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) Find(msg string) ([]object.Hash, error) {
	rows, err := s.db.Query(`SELECT hash FROM commits WHERE message = ? ORDER BY seq`, msg)
	if err != nil {
		return nil, fmt.Errorf("catalog find: %w", err)
	}
	defer rows.Close()

	var out []object.Hash
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("catalog find: %w", err)
		}
		out = append(out, object.Hash(h))
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

var _ Index = (*SQLiteIndex)(nil)
