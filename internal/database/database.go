package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// DB wraps sqlx.DB so services can stay dialect-agnostic: queries are
// written with ? placeholders and rebound per driver.
type DB struct {
	*sqlx.DB
}

// Init opens the configured backend ("postgres" or "sqlite3"), verifies the
// connection and applies the embedded schema migrations.
func Init(driver, dsn string) (*DB, error) {
	sqlxDB, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		// Single writer avoids SQLITE_BUSY under concurrent handlers.
		sqlxDB.SetMaxOpenConns(1)
		if _, err := sqlxDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, closeOnError(sqlxDB, fmt.Errorf("failed to enable foreign keys: %w", err))
		}
	} else {
		sqlxDB.SetMaxOpenConns(25)
		sqlxDB.SetMaxIdleConns(10)
		sqlxDB.SetConnMaxLifetime(5 * time.Minute)
	}

	db := &DB{DB: sqlxDB}
	if err := db.migrate(driver); err != nil {
		return nil, closeOnError(sqlxDB, err)
	}

	return db, nil
}

func (db *DB) migrate(driver string) error {
	var (
		target migratedb.Driver
		dir    string
		err    error
	)

	switch driver {
	case "postgres":
		dir = "migrations/postgres"
		target, err = migratepg.WithInstance(db.DB.DB, &migratepg.Config{})
	case "sqlite3":
		dir = "migrations/sqlite"
		target, err = migratesqlite.WithInstance(db.DB.DB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, target)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// InsertID runs an INSERT and returns the generated row id, papering over
// the RETURNING / LastInsertId split between the two backends. The query
// uses ? placeholders and must not carry a RETURNING clause itself.
func (db *DB) InsertID(ctx context.Context, query string, args ...any) (int64, error) {
	if db.DriverName() == "postgres" {
		var id int64
		err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either backend. Callers insert first and translate the failure, so there
// is no check-then-act window between concurrent requests.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

func closeOnError(db *sqlx.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		return multierror.Append(err, closeErr)
	}
	return err
}
