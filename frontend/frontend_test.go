package frontend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/preciouswiki/precious/dbopen"
	"github.com/preciouswiki/precious/frontend/internal/store"
	"github.com/preciouswiki/precious/wiki"
	"github.com/preciouswiki/precious/wiki/sqlengine"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// renderSpy records what the controller asked the view layer to render and
// writes a recognisable body for handler assertions.
type renderSpy struct {
	status int
	view   string
	data   any
}

func (r *renderSpy) Render(w http.ResponseWriter, status int, view string, data any) error {
	r.status = status
	r.view = view
	r.data = data
	w.WriteHeader(status)
	fmt.Fprintf(w, "view:%s", view)
	return nil
}

// fakeEngine lets unit tests script engine behaviour per call.
type fakeEngine struct {
	findPage      func(ctx context.Context, name, revision string) (*wiki.Page, error)
	findFile      func(ctx context.Context, name string) (*wiki.File, error)
	listRevisions func(ctx context.Context, name string, pageNum int) ([]wiki.Revision, error)
	diff          func(ctx context.Context, from, to, path string) ([]wiki.DiffHunk, error)
}

func (f *fakeEngine) FindPage(ctx context.Context, name, revision string) (*wiki.Page, error) {
	if f.findPage == nil {
		return nil, nil
	}
	return f.findPage(ctx, name, revision)
}

func (f *fakeEngine) FindFile(ctx context.Context, name string) (*wiki.File, error) {
	if f.findFile == nil {
		return nil, nil
	}
	return f.findFile(ctx, name)
}

func (f *fakeEngine) ListRevisions(ctx context.Context, name string, pageNum int) ([]wiki.Revision, error) {
	if f.listRevisions == nil {
		return nil, nil
	}
	return f.listRevisions(ctx, name, pageNum)
}

func (f *fakeEngine) Diff(ctx context.Context, from, to, path string) ([]wiki.DiffHunk, error) {
	if f.diff == nil {
		return nil, nil
	}
	return f.diff(ctx, from, to, path)
}

func (f *fakeEngine) WritePage(ctx context.Context, name, format, content string, author wiki.Author) error {
	return nil
}

func (f *fakeEngine) UpdatePage(ctx context.Context, page *wiki.Page, newName, format, content string, author wiki.Author) error {
	return nil
}

func (f *fakeEngine) PreviewRender(ctx context.Context, title, content, format string) (string, error) {
	return content, nil
}

func (f *fakeEngine) Search(ctx context.Context, query string) ([]wiki.SearchResult, error) {
	return nil, nil
}

// newTestService wires a service against in-memory stores. The returned
// spy observes every render call.
func newTestService(t *testing.T, engine wiki.Engine) (*Service, *renderSpy) {
	t.Helper()

	users := store.NewWithDB(dbopen.OpenMemory(t, dbopen.WithSchema(store.Schema)))
	spy := &renderSpy{}
	svc, err := New(&Config{SessionSecret: testSecret}, users, engine, spy,
		slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, spy
}

// newSQLService wires a service against the real SQLite content engine for
// end-to-end handler tests.
func newSQLService(t *testing.T) (*Service, *renderSpy, *sqlengine.Engine) {
	t.Helper()
	engine := sqlengine.New(dbopen.OpenMemory(t, dbopen.WithSchema(sqlengine.Schema)))
	svc, spy := newTestService(t, engine)
	return svc, spy, engine
}
