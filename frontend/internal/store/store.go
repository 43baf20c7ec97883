// Package store is the SQLite persistence layer for wiki accounts.
// The database lives inside the wiki root as users.db; on first creation
// the file name is appended to the wiki's .gitignore so credentials are
// never versioned alongside page content.
package store

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/preciouswiki/precious/dbopen"
)

// DBFileName is the credential database file inside the wiki root.
const DBFileName = "users.db"

// ErrDuplicateAccount is returned by Insert when the email is already taken.
var ErrDuplicateAccount = errors.New("store: account with this email already exists")

// ErrStorage wraps any I/O or constraint failure other than duplicates.
// The original cause is attached and reachable through errors.Unwrap.
var ErrStorage = errors.New("store: storage failure")

// Store is the credential database handle.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the credential database under wikiRoot and
// applies the schema. When the database file does not exist yet, its name
// is appended to wikiRoot/.gitignore exactly once.
func Open(wikiRoot string) (*Store, error) {
	path := filepath.Join(wikiRoot, DBFileName)

	// File absence is the sentinel for first creation.
	_, statErr := os.Stat(path)
	firstCreate := os.IsNotExist(statErr)

	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if firstCreate {
		if err := ensureIgnored(wikiRoot); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
	}
	return &Store{DB: db}, nil
}

// NewWithDB wraps an already-open database; the caller applies Schema.
// Used by tests running against in-memory SQLite.
func NewWithDB(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// ensureIgnored appends DBFileName to wikiRoot/.gitignore unless an entry
// naming it is already present.
func ensureIgnored(wikiRoot string) error {
	ignorePath := filepath.Join(wikiRoot, ".gitignore")

	if f, err := os.Open(ignorePath); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if scanner.Text() == DBFileName {
				f.Close()
				return nil
			}
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(DBFileName + "\n")
	return err
}
