package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/preciouswiki/precious/dbopen"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	return NewWithDB(db)
}

func TestInsertAndLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, "a@b.com", "Alice", "digest1"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.Lookup(ctx, "a@b.com", "digest1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got == nil {
		t.Fatal("lookup: got nil")
	}
	if got.FullName != "Alice" {
		t.Errorf("FullName: got %q, want Alice", got.FullName)
	}

	// Wrong digest misses.
	miss, err := s.Lookup(ctx, "a@b.com", "wrong")
	if err != nil {
		t.Fatalf("lookup wrong digest: %v", err)
	}
	if miss != nil {
		t.Error("lookup with wrong digest should return nil")
	}
}

func TestInsertDuplicate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, "a@b.com", "Alice", "digest1"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := s.Insert(ctx, "a@b.com", "Impostor", "digest2")
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}

	// The first account's digest is unchanged.
	got, _ := s.GetByEmail(ctx, "a@b.com")
	if got == nil || got.PasswordDigest != "digest1" {
		t.Error("first account mutated by duplicate insert")
	}
}

func TestUpdate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, "a@b.com", "Alice", "digest1"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Update(ctx, "a@b.com", "Alice Smith", "digest2"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := s.GetByEmail(ctx, "a@b.com")
	if got.FullName != "Alice Smith" || got.PasswordDigest != "digest2" {
		t.Errorf("after update: got %+v", got)
	}
}

func TestUpdateMissingAccount(t *testing.T) {
	s := testStore(t)
	err := s.Update(context.Background(), "nobody@b.com", "X", "d")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, "a@b.com", "Alice", "digest1"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Delete(ctx, "a@b.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := s.GetByEmail(ctx, "a@b.com")
	if got != nil {
		t.Error("account still present after delete")
	}

	// Deleting again is harmless.
	if err := s.Delete(ctx, "a@b.com"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestOpenAppendsGitignoreOnce(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Close()

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if strings.Count(string(data), DBFileName) != 1 {
		t.Fatalf(".gitignore after first open:\n%s", data)
	}

	// Second open: file exists, no new entry.
	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2.Close()

	data, _ = os.ReadFile(filepath.Join(dir, ".gitignore"))
	if strings.Count(string(data), DBFileName) != 1 {
		t.Fatalf(".gitignore gained a duplicate entry:\n%s", data)
	}
}

func TestOpenRespectsExistingGitignoreEntry(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"+DBFileName+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Close()

	data, _ := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if strings.Count(string(data), DBFileName) != 1 {
		t.Fatalf("existing entry duplicated:\n%s", data)
	}
}
