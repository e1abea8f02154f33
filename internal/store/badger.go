// internal/store/badger.go
//
// Badger-backed pantry store.
//
// Context
// -------
// Records are JSON documents under zero-padded keys, `item:%012d`, so
// Badger's lexicographic iteration order is insertion order and
// FetchAll needs no sort.  Ids come from a Badger sequence and are
// exposed as plain decimal strings.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/yanizio/larder/internal/metrics"
	"github.com/yanizio/larder/internal/pantry"
)

const itemKeyFmt = "item:%012d"

// Badger implements Store over an embedded BadgerDB.
type Badger struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadger opens (or creates) the database at dir.  Badger's own
// logger is disabled; the service logs through zap.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
	}
	seq, err := db.GetSequence([]byte("seq:item"), 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
	}
	return &Badger{db: db, seq: seq}, nil
}

// Close releases the sequence lease and the database.
func (s *Badger) Close() error {
	if err := s.seq.Release(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

func itemKey(id string) ([]byte, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pantry.ErrNotFound, id)
	}
	return []byte(fmt.Sprintf(itemKeyFmt, n)), nil
}

// FetchAll iterates the item prefix in key order.
func (s *Badger) FetchAll(ctx context.Context) ([]pantry.Ingredient, error) {
	var out []pantry.Ingredient
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("item:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec pantry.Ingredient
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				out = append(out, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(err)
	}
	return out, nil
}

// Insert assigns the next sequence id and writes the record.
func (s *Badger) Insert(ctx context.Context, name, category, amount string) (pantry.Ingredient, error) {
	n, err := s.seq.Next()
	if err != nil {
		return pantry.Ingredient{}, s.fail(err)
	}
	rec := pantry.Ingredient{
		ID:       strconv.FormatUint(n, 10),
		Name:     name,
		Category: category,
		Amount:   amount,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return pantry.Ingredient{}, s.fail(err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(fmt.Sprintf(itemKeyFmt, n)), data)
	})
	if err != nil {
		return pantry.Ingredient{}, s.fail(err)
	}
	return rec, nil
}

// Update reads, patches, and rewrites the record in one transaction.
func (s *Badger) Update(ctx context.Context, id string, f pantry.Fields) error {
	key, err := itemKey(id)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		var rec pantry.Ingredient
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return err
		}
		if f.Name != nil {
			rec.Name = *f.Name
		}
		if f.Category != nil {
			rec.Category = *f.Category
		}
		if f.Amount != nil {
			rec.Amount = *f.Amount
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", pantry.ErrNotFound, id)
	}
	if err != nil {
		return s.fail(err)
	}
	return nil
}

// Delete removes one record, reporting pantry.ErrNotFound when absent.
func (s *Badger) Delete(ctx context.Context, id string) error {
	key, err := itemKey(id)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", pantry.ErrNotFound, id)
	}
	if err != nil {
		return s.fail(err)
	}
	return nil
}

// DeleteAll drops every item key.  The sequence is left running; ids
// are never reused.
func (s *Badger) DeleteAll(ctx context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte("item:")
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Badger) fail(err error) error {
	metrics.StoreErrors.WithLabelValues("badger").Inc()
	return fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
}
