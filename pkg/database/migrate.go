package database

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/JaimeStill/octo/pkg/query"
)

// Migrate runs fn against a migrator reading the dialect's directory of source.
// The directory name is the dialect name ("postgres" or "sqlite").
// migrate.ErrNoChange is not treated as an error.
func Migrate(sys System, source fs.FS, fn func(*migrate.Migrate) error) error {
	src, err := iofs.New(source, string(sys.Dialect()))
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	defer src.Close()

	driver, name, err := migrationDriver(sys)
	if err != nil {
		return err
	}

	// Closing the migrator would close the shared pool, so only the source is released.
	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func migrationDriver(sys System) (migratedb.Driver, string, error) {
	switch sys.Dialect() {
	case query.SQLite:
		d, err := sqlitemigrate.WithInstance(sys.Connection(), &sqlitemigrate.Config{})
		if err != nil {
			return nil, "", fmt.Errorf("sqlite migration driver: %w", err)
		}
		return d, "sqlite", nil
	default:
		d, err := pgxmigrate.WithInstance(sys.Connection(), &pgxmigrate.Config{})
		if err != nil {
			return nil, "", fmt.Errorf("pgx migration driver: %w", err)
		}
		return d, "pgx5", nil
	}
}
