package sqlengine

import (
	"context"
	"errors"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/preciouswiki/precious/dbopen"
	"github.com/preciouswiki/precious/wiki"
)

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	return New(db, opts...)
}

func TestWriteAndFindPage(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	author := wiki.Author{Name: "Alice", Email: "a@b.com", Message: "initial"}
	if err := e.WritePage(ctx, "Home", "markdown", "# Welcome\n\nhello", author); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := e.FindPage(ctx, "Home", "")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p == nil {
		t.Fatal("find: got nil")
	}
	if p.Raw != "# Welcome\n\nhello" {
		t.Errorf("Raw: got %q", p.Raw)
	}
	if !strings.Contains(p.Rendered, "<h1") {
		t.Errorf("Rendered: expected markdown heading, got %q", p.Rendered)
	}
	if len(p.Revision) != 40 {
		t.Errorf("Revision: got %d chars, want 40", len(p.Revision))
	}

	// Pinned lookup at the same revision returns the same content.
	pinned, err := e.FindPage(ctx, "Home", p.Revision)
	if err != nil {
		t.Fatalf("find pinned: %v", err)
	}
	if pinned == nil || pinned.Raw != p.Raw {
		t.Error("pinned lookup mismatch")
	}

	// Unknown revision id is a miss, not an error.
	miss, err := e.FindPage(ctx, "Home", strings.Repeat("0", 40))
	if err != nil {
		t.Fatalf("find unknown revision: %v", err)
	}
	if miss != nil {
		t.Error("expected nil for unknown revision")
	}
}

func TestWritePageDuplicate(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	if err := e.WritePage(ctx, "Home", "markdown", "v1", wiki.Author{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := e.WritePage(ctx, "Home", "markdown", "v2", wiki.Author{})
	if !errors.Is(err, wiki.ErrDuplicatePage) {
		t.Fatalf("expected ErrDuplicatePage, got %v", err)
	}

	// First write is untouched.
	p, _ := e.FindPage(ctx, "Home", "")
	if p == nil || p.Raw != "v1" {
		t.Error("original content changed after duplicate write")
	}
}

func TestUpdatePageAndHistory(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	if err := e.WritePage(ctx, "Home", "markdown", "one", wiki.Author{Message: "first"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, _ := e.FindPage(ctx, "Home", "")

	if err := e.UpdatePage(ctx, p, "", "markdown", "two", wiki.Author{Message: "second"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	head, _ := e.FindPage(ctx, "Home", "")
	if head.Raw != "two" {
		t.Errorf("head after update: got %q, want %q", head.Raw, "two")
	}

	revs, err := e.ListRevisions(ctx, "Home", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("revisions: got %d, want 2", len(revs))
	}
	if revs[0].Message != "second" || revs[1].Message != "first" {
		t.Errorf("order: got [%s %s], want newest first", revs[0].Message, revs[1].Message)
	}

	// Old revision remains addressable.
	old, _ := e.FindPage(ctx, "Home", revs[1].ID)
	if old == nil || old.Raw != "one" {
		t.Error("old revision not addressable after update")
	}
}

func TestUpdatePageRename(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	if err := e.WritePage(ctx, "Draft", "markdown", "body", wiki.Author{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, _ := e.FindPage(ctx, "Draft", "")

	if err := e.UpdatePage(ctx, p, "Final", "markdown", "body", wiki.Author{}); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if gone, _ := e.FindPage(ctx, "Draft", ""); gone != nil {
		t.Error("old name still resolves after rename")
	}
	if moved, _ := e.FindPage(ctx, "Final", ""); moved == nil {
		t.Error("new name does not resolve after rename")
	}

	// History followed the page.
	revs, _ := e.ListRevisions(ctx, "Final", 1)
	if len(revs) != 2 {
		t.Errorf("revisions after rename: got %d, want 2", len(revs))
	}
}

func TestListRevisionsPagination(t *testing.T) {
	e := testEngine(t, WithPageSize(2))
	ctx := context.Background()

	if err := e.WritePage(ctx, "Home", "markdown", "r1", wiki.Author{Message: "m1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, _ := e.FindPage(ctx, "Home", "")
	for _, m := range []string{"m2", "m3", "m4", "m5"} {
		if err := e.UpdatePage(ctx, p, "", "markdown", "content "+m, wiki.Author{Message: m}); err != nil {
			t.Fatalf("update %s: %v", m, err)
		}
	}

	page1, _ := e.ListRevisions(ctx, "Home", 1)
	if len(page1) != 2 || page1[0].Message != "m5" {
		t.Errorf("page 1: got %d entries, first %q", len(page1), page1[0].Message)
	}
	page3, _ := e.ListRevisions(ctx, "Home", 3)
	if len(page3) != 1 || page3[0].Message != "m1" {
		t.Errorf("page 3: expected only the oldest revision")
	}
	clamped, _ := e.ListRevisions(ctx, "Home", 0)
	if len(clamped) != 2 || clamped[0].Message != "m5" {
		t.Error("page 0 should behave like page 1")
	}
}

func TestDiff(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	if err := e.WritePage(ctx, "Home", "markdown", "alpha\nbeta\n", wiki.Author{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, _ := e.FindPage(ctx, "Home", "")
	if err := e.UpdatePage(ctx, p, "", "markdown", "alpha\ngamma\n", wiki.Author{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	revs, _ := e.ListRevisions(ctx, "Home", 1)

	hunks, err := e.Diff(ctx, revs[1].ID, revs[0].ID, "Home")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(hunks) != 1 {
		t.Fatalf("hunks: got %d, want 1", len(hunks))
	}
	if !strings.Contains(hunks[0].Text, "-beta") || !strings.Contains(hunks[0].Text, "+gamma") {
		t.Errorf("diff text missing expected lines:\n%s", hunks[0].Text)
	}

	// Unknown revision: empty result, no error.
	none, err := e.Diff(ctx, strings.Repeat("0", 40), revs[0].ID, "Home")
	if err != nil || none != nil {
		t.Errorf("unknown revision diff: got (%v, %v)", none, err)
	}
}

func TestFiles(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	if err := e.PutFile(ctx, "logo.png", []byte{0x89, 0x50}); err != nil {
		t.Fatalf("put: %v", err)
	}
	f, err := e.FindFile(ctx, "logo.png")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if f == nil || f.MIME != "image/png" {
		t.Fatalf("file: got %+v", f)
	}

	missing, err := e.FindFile(ctx, "nope.bin")
	if err != nil || missing != nil {
		t.Errorf("missing file: got (%v, %v)", missing, err)
	}
}

func TestSearch(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	if err := e.WritePage(ctx, "Cooking", "markdown", "How to bake Bread\nand butter", wiki.Author{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := e.WritePage(ctx, "Gardening", "markdown", "Tomatoes and soil", wiki.Author{}); err != nil {
		t.Fatalf("write: %v", err)
	}

	hits, err := e.Search(ctx, "bread")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Cooking" {
		t.Fatalf("hits: got %+v", hits)
	}
	if hits[0].Snippet != "How to bake Bread" {
		t.Errorf("snippet: got %q", hits[0].Snippet)
	}

	empty, err := e.Search(ctx, "   ")
	if err != nil || empty != nil {
		t.Error("blank query should return nothing")
	}
}

func TestPreviewRender(t *testing.T) {
	e := testEngine(t)

	out, err := e.PreviewRender(context.Background(), "Preview", "*hi*", "markdown")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "<em>hi</em>") {
		t.Errorf("preview: got %q", out)
	}

	plain, err := e.PreviewRender(context.Background(), "Preview", "<b>x</b>", "txt")
	if err != nil {
		t.Fatalf("preview txt: %v", err)
	}
	if !strings.Contains(plain, "&lt;b&gt;") {
		t.Errorf("non-markdown format should be escaped, got %q", plain)
	}
}
