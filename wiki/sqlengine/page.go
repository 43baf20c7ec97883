package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/preciouswiki/precious/wiki"
)

// FindPage returns the page at name, pinned to revision when non-empty.
// (nil, nil) when no such page or revision exists.
func (e *Engine) FindPage(ctx context.Context, name, revision string) (*wiki.Page, error) {
	var (
		pageID int64
		head   string
		format string
	)
	err := e.DB.QueryRowContext(ctx,
		`SELECT id, head, format FROM pages WHERE name = ?`, name).
		Scan(&pageID, &head, &format)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlengine: find page: %w", err)
	}

	revID := revision
	if revID == "" {
		revID = head
	}

	var content, revFormat string
	err = e.DB.QueryRowContext(ctx,
		`SELECT content, format FROM revisions WHERE id = ? AND page_id = ?`,
		revID, pageID).Scan(&content, &revFormat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlengine: find revision: %w", err)
	}

	rendered, err := renderContent(content, revFormat)
	if err != nil {
		return nil, err
	}
	return &wiki.Page{
		Name:     name,
		Path:     name,
		Format:   revFormat,
		Raw:      content,
		Rendered: rendered,
		Revision: revID,
	}, nil
}

// WritePage creates a page with its first revision.
func (e *Engine) WritePage(ctx context.Context, name, format, content string, author wiki.Author) error {
	var exists int
	err := e.DB.QueryRowContext(ctx,
		`SELECT 1 FROM pages WHERE name = ?`, name).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s", wiki.ErrDuplicatePage, name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlengine: write page: %w", err)
	}

	now := time.Now()
	revID := revisionID(name, content, now)

	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlengine: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO pages (name, format, head, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		name, format, revID, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("sqlengine: insert page: %w", err)
	}
	pageID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlengine: page id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (id, page_id, content, format, author_name, author_email, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		revID, pageID, content, format, author.Name, author.Email, author.Message, now.UnixMilli()); err != nil {
		return fmt.Errorf("sqlengine: insert revision: %w", err)
	}
	return tx.Commit()
}

// UpdatePage appends a new revision to page, optionally renaming it.
func (e *Engine) UpdatePage(ctx context.Context, page *wiki.Page, newName, format, content string, author wiki.Author) error {
	var pageID int64
	err := e.DB.QueryRowContext(ctx,
		`SELECT id FROM pages WHERE name = ?`, page.Name).Scan(&pageID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlengine: update: no page named %q", page.Name)
	}
	if err != nil {
		return fmt.Errorf("sqlengine: update page: %w", err)
	}

	name := page.Name
	if newName != "" {
		name = newName
	}
	now := time.Now()
	revID := revisionID(name, content, now)

	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlengine: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (id, page_id, content, format, author_name, author_email, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		revID, pageID, content, format, author.Name, author.Email, author.Message, now.UnixMilli()); err != nil {
		return fmt.Errorf("sqlengine: insert revision: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE pages SET name = ?, format = ?, head = ?, updated_at = ? WHERE id = ?`,
		name, format, revID, now.UnixMilli(), pageID); err != nil {
		return fmt.Errorf("sqlengine: update head: %w", err)
	}
	return tx.Commit()
}

// PreviewRender renders unsaved content without touching the database.
func (e *Engine) PreviewRender(ctx context.Context, title, content, format string) (string, error) {
	return renderContent(content, format)
}
