// Package sqlengine is an SQLite-backed implementation of wiki.Engine.
// Every page write appends an immutable revision row; revision ids are
// 40-hex SHA-1 digests so they satisfy the path revision-selector shape.
package sqlengine

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"fmt"
	"html"
	"time"

	"github.com/yuin/goldmark"

	"github.com/preciouswiki/precious/dbopen"
)

// DefaultPageSize is the number of revisions per history window.
const DefaultPageSize = 20

// Engine is the SQLite content engine handle.
type Engine struct {
	DB       *sql.DB
	pageSize int
}

// Option customises the engine.
type Option func(*Engine)

// WithPageSize overrides the history window size.
func WithPageSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// Open opens (or creates) the content database at path and applies the schema.
func Open(path string, opts ...Option) (*Engine, error) {
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, err
	}
	return New(db, opts...), nil
}

// New wraps an already-open database. The caller owns schema application
// when using New directly (tests use dbopen.OpenMemory + Schema).
func New(db *sql.DB, opts ...Option) *Engine {
	e := &Engine{DB: db, pageSize: DefaultPageSize}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Close closes the database.
func (e *Engine) Close() error {
	return e.DB.Close()
}

// revisionID derives a 40-hex content-addressed id for a new revision.
func revisionID(name, content string, at time.Time) string {
	sum := sha1.Sum(fmt.Appendf(nil, "%s\x00%s\x00%d", name, content, at.UnixNano()))
	return hex.EncodeToString(sum[:])
}

// renderContent turns page source into HTML. Markdown goes through goldmark;
// any other format is served as escaped preformatted text.
func renderContent(content, format string) (string, error) {
	switch format {
	case "", "markdown", "md":
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("sqlengine: render markdown: %w", err)
		}
		return buf.String(), nil
	default:
		return "<pre>" + html.EscapeString(content) + "</pre>", nil
	}
}
