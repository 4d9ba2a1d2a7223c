package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "modernc.org/sqlite"

	"github.com/JaimeStill/octo/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE, created_at INTEGER NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	otherPg := &pgconn.PgError{Code: "12345"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", errors.Join(errors.New("ctx"), sql.ErrNoRows), errNotFound},
		{"pg duplicate", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"pg other", otherPg, otherPg},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapError(tt.err, errNotFound, errDuplicate); got != tt.want {
				t.Errorf("MapError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapError_SQLiteUnique(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	insert := `INSERT INTO items (name, created_at) VALUES (?1, ?2)`
	if err := repository.ExecExpectOne(ctx, db, insert, "alpha", int64(1)); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := repository.ExecExpectOne(ctx, db, insert, "alpha", int64(2))
	if got := repository.MapError(err, errNotFound, errDuplicate); got != errDuplicate {
		t.Errorf("MapError(unique violation) = %v, want %v", got, errDuplicate)
	}
}

type item struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

func scanItem(s repository.Scanner) (item, error) {
	var it item
	var created repository.Time
	err := s.Scan(&it.ID, &it.Name, &created)
	it.CreatedAt = created.Time
	return it, err
}

func TestQueryHelpers(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	stamp := time.Date(2026, 10, 16, 9, 30, 0, 123456789, time.UTC)

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for i, name := range []string{"alpha", "beta", "gamma"} {
			at := stamp.Add(time.Duration(i) * time.Second).UnixNano()
			if err := repository.ExecExpectOne(ctx, tx, `INSERT INTO items (name, created_at) VALUES (?1, ?2)`, name, at); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	items, err := repository.QueryMany(ctx, db, `SELECT id, name, created_at FROM items ORDER BY created_at DESC`, nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if len(items) != 3 || items[0].Name != "gamma" {
		t.Fatalf("QueryMany() = %+v, want gamma first", items)
	}
	if !items[2].CreatedAt.Equal(stamp) {
		t.Errorf("CreatedAt = %v, want %v", items[2].CreatedAt, stamp)
	}

	one, err := repository.QueryOne(ctx, db, `SELECT id, name, created_at FROM items WHERE name = ?1`, []any{"beta"}, scanItem)
	if err != nil || one.Name != "beta" {
		t.Errorf("QueryOne() = %+v, %v", one, err)
	}

	_, err = repository.QueryOne(ctx, db, `SELECT id, name, created_at FROM items WHERE name = ?1`, []any{"delta"}, scanItem)
	if got := repository.MapError(err, errNotFound, errDuplicate); got != errNotFound {
		t.Errorf("QueryOne(missing) mapped to %v, want %v", got, errNotFound)
	}

	total, err := repository.QueryCount(ctx, db, `SELECT COUNT(*) FROM items`, nil)
	if err != nil || total != 3 {
		t.Errorf("QueryCount() = %d, %v; want 3", total, err)
	}

	empty, err := repository.QueryMany(ctx, db, `SELECT id, name, created_at FROM items WHERE 1 = 0`, nil, scanItem)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("QueryMany(empty) = %#v, %v; want empty non-nil slice", empty, err)
	}
}

func TestWithTx_RollsBack(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (int, error) {
		if err := repository.ExecExpectOne(ctx, tx, `INSERT INTO items (name, created_at) VALUES (?1, ?2)`, "alpha", int64(1)); err != nil {
			return 0, err
		}
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}

	total, _ := repository.QueryCount(ctx, db, `SELECT COUNT(*) FROM items`, nil)
	if total != 0 {
		t.Errorf("rows after rollback = %d, want 0", total)
	}
}

func TestExecExpectOne_NoRows(t *testing.T) {
	db := openSQLite(t)

	err := repository.ExecExpectOne(context.Background(), db, `DELETE FROM items WHERE id = ?1`, 42)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ExecExpectOne() error = %v, want sql.ErrNoRows", err)
	}
}

func TestTime_Scan(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"time", want},
		{"nanos", want.UnixNano()},
		{"rfc3339", want.Format(time.RFC3339Nano)},
		{"bytes", []byte(want.Format(time.RFC3339Nano))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got repository.Time
			if err := got.Scan(tt.src); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("Scan() = %v, want %v", got.Time, want)
			}
		})
	}

	var bad repository.Time
	if err := bad.Scan(3.14); err == nil {
		t.Error("Scan(float) expected error")
	}
}
