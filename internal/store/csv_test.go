// internal/store/csv_test.go
//
// Tests for the flat-file store against a temp directory, including
// reopen-and-read persistence.
//
// Run: go test ./internal/store -v

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/yanizio/larder/internal/pantry"
)

func newCSVStore(t *testing.T) (*CSV, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pantry.csv")
	s, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}
	return s, path
}

func TestCSVRoundTrip(t *testing.T) {
	s, path := newCSVStore(t)
	ctx := context.Background()

	a, err := s.Insert(ctx, "Tomato", "Vegetable", "3")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	b, err := s.Insert(ctx, "Olive Oil", "Pantry", "1 bottle")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("ids must be unique, both %q", a.ID)
	}

	// A fresh handle sees the same rows in the same order.
	s2, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	rows, err := s2.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Tomato" || rows[1].Name != "Olive Oil" {
		t.Fatalf("rows = %#v", rows)
	}
}

func TestCSVUpdateAndDelete(t *testing.T) {
	s, _ := newCSVStore(t)
	ctx := context.Background()

	rec, err := s.Insert(ctx, "Tomato", "Vegetable", "")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	cat := "Fruit"
	if err := s.Update(ctx, rec.ID, pantry.Fields{Category: &cat}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, _ := s.FetchAll(ctx)
	if rows[0].Category != "Fruit" || rows[0].Name != "Tomato" {
		t.Fatalf("partial update broke row: %#v", rows[0])
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, pantry.ErrNotFound) {
		t.Fatalf("want ErrNotFound on second delete, got %v", err)
	}
}

func TestCSVUpdateUnknown(t *testing.T) {
	s, _ := newCSVStore(t)
	name := "x"
	if err := s.Update(context.Background(), "42", pantry.Fields{Name: &name}); !errors.Is(err, pantry.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCSVDeleteAll(t *testing.T) {
	s, _ := newCSVStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, "Salt", "", ""); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	rows, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows after clear = %#v", rows)
	}

	if _, err := s.Insert(ctx, "Pepper", "", ""); err != nil {
		t.Fatalf("insert after clear: %v", err)
	}
}
