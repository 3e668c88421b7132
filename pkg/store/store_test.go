package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	perrors "github.com/matzehuels/permgroup/pkg/errors"
	groupio "github.com/matzehuels/permgroup/pkg/io"
)

var s4 = groupio.Definition{Name: "S4", Degree: 4, Generators: []string{"(0 1)", "(0 1 2 3)"}}

// exercise runs the behaviour every backend shares.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	defer s.Close()

	if _, err := s.Get(ctx, NewID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	a := NewRecord(s4)
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Error("Put did not stamp the record")
	}
	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(a, got, cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	time.Sleep(2 * time.Millisecond)
	b := NewRecord(groupio.Definition{Degree: 3, Generators: []string{"(0 1 2)"}})
	if err := s.Put(ctx, b); err != nil {
		t.Fatalf("Put: %v", err)
	}

	a.Definition.Generators = append(a.Definition.Generators, "(1 2)")
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put(update): %v", err)
	}
	got, err = s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Definition.Generators) != 3 {
		t.Errorf("update lost: %v", got.Definition.Generators)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{a.ID, b.ID}, ids); diff != "" {
		t.Errorf("List order mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(deleted) = %v, want ErrNotFound", err)
	}
	if perrors.GetCode(s.Delete(ctx, a.ID)) != perrors.ErrCodeGroupNotFound {
		t.Error("not found error lost its code")
	}
	if err := s.Delete(ctx, b.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "groups.db"))
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec := NewRecord(s4)
	if err := s.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Definition.Generators[0] = "(2 3)"
	got, _ := s.Get(ctx, rec.ID)
	if got.Definition.Generators[0] != "(0 1)" {
		t.Error("stored record aliases the caller's slice")
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"../etc/passwd", "", "abc"} {
		if _, err := s.Get(context.Background(), id); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
			t.Errorf("Get(%q) = %v, want INVALID_INPUT", id, err)
		}
	}
}

func TestBackendFailures(t *testing.T) {
	ctx := context.Background()

	dir := filepath.Join(t.TempDir(), "groups")
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	// A regular file where the record directory should be.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	db, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "groups.db"))
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	for name, s := range map[string]Store{"file": fs, "sqlite": db} {
		t.Run(name, func(t *testing.T) {
			rec := NewRecord(s4)
			if err := s.Put(ctx, rec); !perrors.Is(err, perrors.ErrCodeStorage) {
				t.Errorf("Put = %v, want STORAGE_ERROR", err)
			}
			if _, err := s.Get(ctx, rec.ID); !perrors.Is(err, perrors.ErrCodeStorage) {
				t.Errorf("Get = %v, want STORAGE_ERROR", err)
			}
			if _, err := s.List(ctx); !perrors.Is(err, perrors.ErrCodeStorage) {
				t.Errorf("List = %v, want STORAGE_ERROR", err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []Config{
		{},
		{Backend: "memory"},
		{Backend: "file", Path: t.TempDir()},
		{Backend: "SQLite", Path: filepath.Join(t.TempDir(), "g.db")},
	} {
		s, err := Open(ctx, cfg)
		if err != nil {
			t.Errorf("Open(%+v): %v", cfg, err)
			continue
		}
		s.Close()
	}
	if _, err := Open(ctx, Config{Backend: "etcd"}); !perrors.Is(err, perrors.ErrCodeUnsupported) {
		t.Errorf("Open(etcd) = %v, want UNSUPPORTED", err)
	}
}
