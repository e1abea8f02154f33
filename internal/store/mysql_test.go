// internal/store/mysql_test.go
//
// Unit-tests for the MySQL store using sqlmock.
//
// Run: go test ./internal/store -v

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/larder/internal/pantry"
)

func newMockStore(t *testing.T) (*MySQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMySQL(sqlx.NewDb(db, "mysql")), mock
}

func TestMySQLFetchAll(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, category, amount FROM pantry_item ORDER BY id`,
	)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "category", "amount"}).
			AddRow("1", "Tomato", "Vegetable", "3").
			AddRow("2", "Olive Oil", "Pantry", "1 bottle"),
	)

	got, err := s.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Tomato" || got[1].ID != "2" {
		t.Fatalf("unexpected rows: %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestMySQLInsertAssignsID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO pantry_item (name, category, amount) VALUES (?, ?, ?)`,
	)).
		WithArgs("Basil", "Herb", "").
		WillReturnResult(sqlmock.NewResult(7, 1))

	rec, err := s.Insert(context.Background(), "Basil", "Herb", "")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if rec.ID != "7" || rec.Name != "Basil" {
		t.Fatalf("inserted record = %#v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestMySQLDeleteNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM pantry_item WHERE id = ?`,
	)).
		WithArgs("99").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), "99")
	if !errors.Is(err, pantry.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMySQLUpdatePartialFields(t *testing.T) {
	s, mock := newMockStore(t)

	name := "Sea Salt"
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE pantry_item SET name = IFNULL(?, name), category = IFNULL(?, category), amount = IFNULL(?, amount) WHERE id = ?`,
	)).
		WithArgs("Sea Salt", nil, nil, "3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Update(context.Background(), "3", pantry.Fields{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestMySQLDSNFoundRows(t *testing.T) {
	dsn, err := withFoundRows("larder:secret@tcp(127.0.0.1:3306)/larder?parseTime=true")
	if err != nil {
		t.Fatalf("withFoundRows: %v", err)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse rewritten DSN: %v", err)
	}
	if !cfg.ClientFoundRows {
		t.Fatal("clientFoundRows not set; a no-op update would read as a missing row")
	}
	if !cfg.ParseTime || cfg.DBName != "larder" {
		t.Fatalf("rewrite dropped existing settings: %#v", cfg)
	}
}

func TestMySQLUpdateUnknownID(t *testing.T) {
	s, mock := newMockStore(t)

	name := "Basil"
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE pantry_item SET name = IFNULL(?, name), category = IFNULL(?, category), amount = IFNULL(?, amount) WHERE id = ?`,
	)).
		WithArgs("Basil", nil, nil, "99").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), "99", pantry.Fields{Name: &name})
	if !errors.Is(err, pantry.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMySQLQueryErrorIsUnavailable(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM pantry_item`)).
		WillReturnError(errors.New("connection refused"))

	err := s.DeleteAll(context.Background())
	if !errors.Is(err, pantry.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
