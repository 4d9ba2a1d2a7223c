// Package migrations embeds the schema migrations for each supported dialect.
package migrations

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/octo/pkg/database"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Up applies all pending migrations.
func Up(db database.System) error {
	return database.Migrate(db, FS, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// Down reverts steps migrations. A steps value below 1 reverts all of them.
func Down(db database.System, steps int) error {
	return database.Migrate(db, FS, func(m *migrate.Migrate) error {
		if steps < 1 {
			return m.Down()
		}
		return m.Steps(-steps)
	})
}

// Version reports the applied version and whether the last migration failed midway.
func Version(db database.System) (version uint, dirty bool, err error) {
	err = database.Migrate(db, FS, func(m *migrate.Migrate) error {
		var verr error
		version, dirty, verr = m.Version()
		if verr == migrate.ErrNilVersion {
			return nil
		}
		return verr
	})
	return version, dirty, err
}
