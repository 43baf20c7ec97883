package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"github.com/preciouswiki/precious/wiki"
)

// FindFile returns the non-page file at name, or (nil, nil) if absent.
func (e *Engine) FindFile(ctx context.Context, name string) (*wiki.File, error) {
	f := &wiki.File{Name: name}
	err := e.DB.QueryRowContext(ctx,
		`SELECT data, mime FROM files WHERE name = ?`, name).Scan(&f.Data, &f.MIME)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlengine: find file: %w", err)
	}
	return f, nil
}

// PutFile stores (or replaces) a non-page file. The MIME type is derived
// from the file extension, falling back to application/octet-stream.
func (e *Engine) PutFile(ctx context.Context, name string, data []byte) error {
	mt := mime.TypeByExtension(filepath.Ext(name))
	if mt == "" {
		mt = "application/octet-stream"
	}
	_, err := e.DB.ExecContext(ctx, `
		INSERT INTO files (name, data, mime, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, mime = excluded.mime, updated_at = excluded.updated_at`,
		name, data, mt, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("sqlengine: put file: %w", err)
	}
	return nil
}
