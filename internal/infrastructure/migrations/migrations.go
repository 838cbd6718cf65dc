// Package migrations embeds the journal schema and applies it with
// golang-migrate. It carries its own database.Driver shim because the
// stock sqlite3 driver links mattn/go-sqlite3, whose registration
// collides with the ncruces driver the rest of the repo uses.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var schemaFS embed.FS

// MigrationsFS exposes the embedded migration files.
func MigrationsFS() fs.FS {
	return schemaFS
}

// RunMigrations brings db up to the latest journal schema. A database
// that is already current is not an error.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(schemaFS, ".")
	if err != nil {
		return err
	}
	driver, err := WithInstance(db)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
