// internal/store/mysql.go
//
// MySQL-backed pantry store.
//
// Context
// -------
// One table, `pantry_item`, with a BIGINT auto-increment key exposed to
// the rest of the service as a decimal string.  Queries are
// parameterised SQL consts; column lists match the scan struct and the
// two must be updated together.
//
// Schema
// ------
//	CREATE TABLE pantry_item (
//	  id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
//	  name     VARCHAR(190) NOT NULL,
//	  category VARCHAR(190) NOT NULL DEFAULT '',
//	  amount   VARCHAR(190) NOT NULL DEFAULT ''
//	);
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/larder/internal/metrics"
	"github.com/yanizio/larder/internal/pantry"
)

// MySQL implements Store over a sqlx connection pool.
type MySQL struct {
	db *sqlx.DB
}

// OpenMySQL connects with conservative pool sizes and pings before
// returning so bootstrap fails fast on a bad DSN.
func OpenMySQL(dsn string) (*MySQL, error) {
	dsn, err := withFoundRows(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
	}

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
	}

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
	}
	return &MySQL{db: db}, nil
}

// NewMySQL wraps an existing pool.  Used by tests with sqlmock.
func NewMySQL(db *sqlx.DB) *MySQL { return &MySQL{db: db} }

// Close releases the pool.
func (s *MySQL) Close() error { return s.db.Close() }

// FetchAll returns every pantry row in id order, which is insertion
// order under an auto-increment key.
func (s *MySQL) FetchAll(ctx context.Context) ([]pantry.Ingredient, error) {
	const q = `
        SELECT id, name, category, amount
        FROM   pantry_item
        ORDER  BY id`
	var rows []pantry.Ingredient
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, s.fail(err)
	}
	return rows, nil
}

// Insert writes a new row and returns it with the assigned id.
func (s *MySQL) Insert(ctx context.Context, name, category, amount string) (pantry.Ingredient, error) {
	const q = `
        INSERT INTO pantry_item (name, category, amount)
        VALUES (?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, name, category, amount)
	if err != nil {
		return pantry.Ingredient{}, s.fail(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pantry.Ingredient{}, s.fail(err)
	}
	return pantry.Ingredient{
		ID:       strconv.FormatInt(id, 10),
		Name:     name,
		Category: category,
		Amount:   amount,
	}, nil
}

// Update patches only the supplied fields; nil pointers arrive as SQL
// NULL and IFNULL keeps the current value.  Unknown ids report
// pantry.ErrNotFound.
func (s *MySQL) Update(ctx context.Context, id string, f pantry.Fields) error {
	const q = `
        UPDATE pantry_item
        SET    name     = IFNULL(?, name),
               category = IFNULL(?, category),
               amount   = IFNULL(?, amount)
        WHERE  id = ?`
	res, err := s.db.ExecContext(ctx, q, f.Name, f.Category, f.Amount, id)
	if err != nil {
		return s.fail(err)
	}
	return s.requireRow(res, id)
}

// Delete removes one row, reporting pantry.ErrNotFound when absent.
func (s *MySQL) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM pantry_item WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return s.fail(err)
	}
	return s.requireRow(res, id)
}

// DeleteAll empties the table.
func (s *MySQL) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pantry_item`); err != nil {
		return s.fail(err)
	}
	return nil
}

// withFoundRows rewrites dsn so RowsAffected reports rows matched
// rather than rows changed.  Without CLIENT_FOUND_ROWS a no-op update
// of an existing row affects zero rows and requireRow would misread
// that as a missing id.
func withFoundRows(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// requireRow converts a zero-row update or delete into ErrNotFound.
// Relies on CLIENT_FOUND_ROWS (set in OpenMySQL) so zero means the id
// is absent, never that the update happened to change nothing.
// RowsAffected never errors on the MySQL driver, but check anyway.
func (s *MySQL) requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return s.fail(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", pantry.ErrNotFound, id)
	}
	return nil
}

func (s *MySQL) fail(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	metrics.StoreErrors.WithLabelValues("mysql").Inc()
	return fmt.Errorf("%w: %v", pantry.ErrUnavailable, err)
}
