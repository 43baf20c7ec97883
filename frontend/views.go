package frontend

import (
	"net/http"

	"github.com/preciouswiki/precious/wiki"
)

// Renderer is the boundary to the template layer. Views are immutable
// structs; the renderer owns all markup concerns.
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, data any) error
}

// PageView backs the "page" template.
type PageView struct {
	Name          string
	Rendered      string // sanitized HTML
	Revision      string
	Authenticated bool
}

// CreateView backs the "create" template, pre-populated with the requested
// name.
type CreateView struct {
	Name string
}

// EditView backs the "edit" template.
type EditView struct {
	Name    string
	Content string
	Format  string
}

// HistoryView backs the "history" template.
type HistoryView struct {
	Name      string
	PageNum   int
	Revisions []wiki.Revision
}

// CompareView backs the "compare" template. Diff is the unified-diff text
// of the first hunk the engine returned.
type CompareView struct {
	Name string
	From string
	To   string
	Diff string
}

// SearchView backs the "search" template.
type SearchView struct {
	Query   string
	Results []wiki.SearchResult
}

// LoginView backs the "login" template. Message carries a validation or
// authentication failure for re-prompting.
type LoginView struct {
	Email   string
	Message string
}

// AccountView backs the "account" template.
type AccountView struct {
	Email    string
	FullName string
	Message  string
}

// ErrorView backs the "error" template.
type ErrorView struct {
	Message string
}
