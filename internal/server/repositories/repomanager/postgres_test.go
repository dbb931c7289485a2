package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		if driverName != "pgx" {
			t.Fatalf("unexpected driver %q", driverName)
		}
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	})

	m := newPostgresManager(db)
	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
	if m.Users() == nil {
		t.Fatal("Users() nil")
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	m := newPostgresManager(db)
	if err := m.RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestNewPostgresRepositoryManager_OpensPingsMigrates(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpen(t, db, nil)

	migrated := false
	stubGoose(t, func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		migrated = got == db
		return nil
	})

	m, err := NewPostgresRepositoryManager(context.Background(), "postgres://x", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !migrated {
		t.Fatal("migrations did not run against the opened pool")
	}
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNewPostgresRepositoryManager_PingFails(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()
	stubOpen(t, db, nil)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		t.Fatal("migrations must not run when ping fails")
		return nil
	})

	if _, err := NewPostgresRepositoryManager(context.Background(), "postgres://x", time.Second); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestNewPostgresRepositoryManager_MigrationFailureClosesPool(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpen(t, db, nil)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("bad migration")
	})

	if _, err := NewPostgresRepositoryManager(context.Background(), "postgres://x", 0); err == nil {
		t.Fatal("expected migration error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNewPostgresRepositoryManager_OpenFails(t *testing.T) {
	stubOpen(t, nil, errors.New("bad dsn"))

	if _, err := NewPostgresRepositoryManager(context.Background(), "::", time.Second); err == nil {
		t.Fatal("expected open error")
	}
}
