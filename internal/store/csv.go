// internal/store/csv.go
//
// Flat-file pantry store.
//
// Context
// -------
// One CSV file with the header `id,ingredient_name,category,
// quantity_unit`.  Every mutation reads the whole file, applies the
// change, and rewrites it through a temp file plus rename so a crash
// mid-write never leaves a torn file.  Ids are max+1 over the numeric
// ids already present.
//
// This is the smallest backend that survives a restart; it exists for
// single-user setups with no database at hand.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/yanizio/larder/internal/metrics"
	"github.com/yanizio/larder/internal/pantry"
)

var csvHeader = []string{"id", "ingredient_name", "category", "quantity_unit"}

// CSV implements Store over a single flat file.
type CSV struct {
	mu   sync.Mutex
	path string
}

// OpenCSV binds to path, creating an empty header-only file when none
// exists.
func OpenCSV(path string) (*CSV, error) {
	s := &CSV{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.writeAll(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
	}
	return s, nil
}

// Close is a no-op; the file is never held open between calls.
func (s *CSV) Close() error { return nil }

// FetchAll reads every row in file order.
func (s *CSV) FetchAll(ctx context.Context) ([]pantry.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// Insert appends a row with the next numeric id.
func (s *CSV) Insert(ctx context.Context, name, category, amount string) (pantry.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.readAll()
	if err != nil {
		return pantry.Ingredient{}, err
	}
	rec := pantry.Ingredient{
		ID:       nextID(recs),
		Name:     name,
		Category: category,
		Amount:   amount,
	}
	recs = append(recs, rec)
	if err := s.writeAll(recs); err != nil {
		return pantry.Ingredient{}, err
	}
	return rec, nil
}

// Update patches one row in place.
func (s *CSV) Update(ctx context.Context, id string, f pantry.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.readAll()
	if err != nil {
		return err
	}
	found := false
	for i := range recs {
		if recs[i].ID != id {
			continue
		}
		found = true
		if f.Name != nil {
			recs[i].Name = *f.Name
		}
		if f.Category != nil {
			recs[i].Category = *f.Category
		}
		if f.Amount != nil {
			recs[i].Amount = *f.Amount
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", pantry.ErrNotFound, id)
	}
	return s.writeAll(recs)
}

// Delete filters one row out.
func (s *CSV) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.readAll()
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, rec := range recs {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(recs) {
		return fmt.Errorf("%w: %s", pantry.ErrNotFound, id)
	}
	return s.writeAll(kept)
}

// DeleteAll rewrites the file to header-only.
func (s *CSV) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAll(nil)
}

func (s *CSV) readAll() ([]pantry.Ingredient, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, s.fail(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, s.fail(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]pantry.Ingredient, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 4 {
			continue
		}
		out = append(out, pantry.Ingredient{
			ID:       row[0],
			Name:     row[1],
			Category: row[2],
			Amount:   row[3],
		})
	}
	return out, nil
}

func (s *CSV) writeAll(recs []pantry.Ingredient) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pantry-*.csv")
	if err != nil {
		return s.fail(err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return s.fail(err)
	}
	for _, rec := range recs {
		if err := w.Write([]string{rec.ID, rec.Name, rec.Category, rec.Amount}); err != nil {
			tmp.Close()
			return s.fail(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return s.fail(err)
	}
	if err := tmp.Close(); err != nil {
		return s.fail(err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return s.fail(err)
	}
	return nil
}

// nextID returns max(numeric ids)+1, starting at 1 for an empty file.
func nextID(recs []pantry.Ingredient) string {
	var max int64
	for _, rec := range recs {
		if n, err := strconv.ParseInt(rec.ID, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

func (s *CSV) fail(err error) error {
	metrics.StoreErrors.WithLabelValues("csv").Inc()
	return fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
}
