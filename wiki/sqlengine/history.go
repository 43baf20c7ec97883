package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/preciouswiki/precious/wiki"
)

// ListRevisions returns one newest-first window of name's history.
// pageNum is 1-based; values below 1 behave as 1.
func (e *Engine) ListRevisions(ctx context.Context, name string, pageNum int) ([]wiki.Revision, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	offset := (pageNum - 1) * e.pageSize

	rows, err := e.DB.QueryContext(ctx, `
		SELECT r.id, r.author_name, r.author_email, r.message, r.created_at
		FROM revisions r
		JOIN pages p ON p.id = r.page_id
		WHERE p.name = ?
		ORDER BY r.created_at DESC, r.rowid DESC
		LIMIT ? OFFSET ?`, name, e.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("sqlengine: list revisions: %w", err)
	}
	defer rows.Close()

	var revs []wiki.Revision
	for rows.Next() {
		var (
			r  wiki.Revision
			ms int64
		)
		if err := rows.Scan(&r.ID, &r.AuthorName, &r.AuthorEmail, &r.Message, &ms); err != nil {
			return nil, fmt.Errorf("sqlengine: scan revision: %w", err)
		}
		r.CreatedAt = time.UnixMilli(ms)
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// Diff compares two revisions of the page at path and returns one unified
// diff hunk. Unknown revision ids yield an empty result, not an error.
func (e *Engine) Diff(ctx context.Context, from, to, path string) ([]wiki.DiffHunk, error) {
	fromContent, ok1, err := e.revisionContent(ctx, from, path)
	if err != nil {
		return nil, err
	}
	toContent, ok2, err := e.revisionContent(ctx, to, path)
	if err != nil {
		return nil, err
	}
	if !ok1 || !ok2 {
		return nil, nil
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(fromContent),
		B:        difflib.SplitLines(toContent),
		FromFile: path + "@" + from,
		ToFile:   path + "@" + to,
		Context:  3,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlengine: diff: %w", err)
	}
	return []wiki.DiffHunk{{Path: path, Text: text}}, nil
}

func (e *Engine) revisionContent(ctx context.Context, revID, pageName string) (string, bool, error) {
	var content string
	err := e.DB.QueryRowContext(ctx, `
		SELECT r.content
		FROM revisions r
		JOIN pages p ON p.id = r.page_id
		WHERE r.id = ? AND p.name = ?`, revID, pageName).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlengine: revision content: %w", err)
	}
	return content, true, nil
}
