// Package sqlite stores the reading journal in a single SQLite file,
// opened through the CGO-free ncruces driver. It owns the connection
// lifecycle, schema migrations and the repository implementation.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olincollege/fairytale-sound-effects/internal/infrastructure/migrations"
	"github.com/olincollege/fairytale-sound-effects/internal/journal/domain"
	"github.com/olincollege/fairytale-sound-effects/internal/log"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB is an open journal database with migrations applied.
type DB struct {
	conn *sql.DB
	path string
}

// Connection pragmas applied on open. WAL lets the TUI write while the
// journal command reads; the busy timeout covers that same overlap.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// NewDB opens the journal database at path, creating the parent
// directory when needed, and brings the schema up to date. An existing
// file is copied to path.bak first so a failed migration never eats
// the reading history.
func NewDB(path string) (*DB, error) {
	log.Debug(log.CatDB, "Opening journal database", "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	if err := backupExisting(path); err != nil {
		return nil, fmt.Errorf("backing up journal before migration: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging journal database: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrations.RunMigrations(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Journal migration failed", err, "path", path)
		return nil, fmt.Errorf("migrating journal schema: %w", err)
	}

	log.Info(log.CatDB, "Journal database ready", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// Close releases the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	log.Debug(log.CatDB, "Closing journal database", "path", db.path)
	return db.conn.Close()
}

// JournalRepository returns the repository bound to this connection.
func (db *DB) JournalRepository() domain.Repository {
	return newJournalRepository(db.conn)
}

// backupExisting copies an existing database file to path.bak,
// replacing any previous backup. Journal files are small, so a whole
// read is fine.
func backupExisting(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured journal location
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path+".bak", data, 0o600)
}
