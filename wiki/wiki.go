// Package wiki defines the boundary to the version-controlled content engine.
// The frontend consumes pages, files, revisions, diffs and search results
// through the Engine interface; storage and markup rendering live behind it.
package wiki

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicatePage is returned by WritePage when a page already exists at
// the requested name.
var ErrDuplicatePage = errors.New("wiki: page already exists")

// Page is a named wiki page at some revision.
type Page struct {
	Name     string
	Path     string
	Format   string
	Raw      string // source markup
	Rendered string // engine-rendered HTML, unsanitized
	Revision string // 40-hex revision id the content was read at
}

// File is a non-page file stored alongside pages.
type File struct {
	Name string
	Data []byte
	MIME string
}

// Revision is an immutable snapshot of a page's history.
type Revision struct {
	ID          string // 40-hex content-addressed id
	AuthorName  string
	AuthorEmail string
	Message     string
	CreatedAt   time.Time
}

// DiffHunk is one path-level diff between two revisions.
type DiffHunk struct {
	Path string
	Text string // unified diff body
}

// SearchResult is a single full-text search hit.
type SearchResult struct {
	Name    string
	Snippet string
	Count   int
}

// Author identifies who performed a page write.
type Author struct {
	Name    string
	Email   string
	Message string
}

// Engine is the external content engine consumed by the frontend.
// All lookups return (nil, nil) when nothing matches; "not found" is a
// normal outcome, not an error.
type Engine interface {
	// FindPage returns the page at name, optionally pinned to a revision id.
	// An empty revision means the current head.
	FindPage(ctx context.Context, name, revision string) (*Page, error)

	// FindFile returns the non-page file at name.
	FindFile(ctx context.Context, name string) (*File, error)

	// ListRevisions returns one window of a page's history, newest first.
	// pageNum is 1-based.
	ListRevisions(ctx context.Context, name string, pageNum int) ([]Revision, error)

	// Diff compares two revisions restricted to path.
	Diff(ctx context.Context, from, to, path string) ([]DiffHunk, error)

	// WritePage creates a page; ErrDuplicatePage if the name is taken.
	WritePage(ctx context.Context, name, format, content string, author Author) error

	// UpdatePage stores a new revision of page, optionally renaming it.
	UpdatePage(ctx context.Context, page *Page, newName, format, content string, author Author) error

	// PreviewRender renders unsaved content without persisting anything.
	PreviewRender(ctx context.Context, title, content, format string) (string, error)

	// Search returns pages matching query.
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
