package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

// versionTable tracks the applied schema version, under the same name
// the stock sqlite3 driver uses.
const versionTable = "schema_migrations"

// migrateDriver adapts an ncruces-backed *sql.DB to golang-migrate's
// database.Driver. The stock sqlite3 driver cannot be linked here: it
// pulls in mattn/go-sqlite3, which registers under the same driver
// name the ncruces driver claims.
type migrateDriver struct {
	db     *sql.DB
	locked atomic.Bool
}

// WithInstance wraps an already open connection for use with migrate.
// The connection must come from the ncruces driver.
func WithInstance(db *sql.DB) (database.Driver, error) {
	if err := db.Ping(); err != nil {
		return nil, err
	}
	d := &migrateDriver{db: db}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *migrateDriver) ensureVersionTable() (err error) {
	if err = d.Lock(); err != nil {
		return err
	}
	defer func() {
		if e := d.Unlock(); e != nil {
			err = errors.Join(err, e)
		}
	}()

	_, err = d.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (version uint64, dirty bool);
		CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON %s (version);`,
		versionTable, versionTable))
	return err
}

// Open satisfies database.Driver; connections are always supplied
// through WithInstance.
func (d *migrateDriver) Open(string) (database.Driver, error) {
	return nil, errors.New("open by URL unsupported, use WithInstance")
}

// Close closes the wrapped connection.
func (d *migrateDriver) Close() error {
	return d.db.Close()
}

// Lock and Unlock guard a single migration run per process. SQLite has
// no advisory locks to lean on, so this is an in-memory flag.
func (d *migrateDriver) Lock() error {
	if !d.locked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

// Unlock releases the in-memory migration lock.
func (d *migrateDriver) Unlock() error {
	if !d.locked.CompareAndSwap(true, false) {
		return database.ErrNotLocked
	}
	return nil
}

// Run applies one migration file inside a transaction.
func (d *migrateDriver) Run(migration io.Reader) error {
	stmts, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(string(stmts)); err != nil {
			return &database.Error{OrigErr: err, Query: stmts}
		}
		return nil
	})
}

// SetVersion records the current schema version, replacing any prior
// row. A dirty NilVersion is written out too, so a failed down
// migration of the very first migration stays visible
// (golang-migrate/migrate#330).
func (d *migrateDriver) SetVersion(version int, dirty bool) error {
	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM " + versionTable); err != nil {
			return &database.Error{OrigErr: err, Err: "clearing version table"}
		}
		if version >= 0 || (version == database.NilVersion && dirty) {
			query := fmt.Sprintf("INSERT INTO %s (version, dirty) VALUES (?, ?)", versionTable)
			if _, err := tx.Exec(query, version, dirty); err != nil {
				return &database.Error{OrigErr: err, Query: []byte(query)}
			}
		}
		return nil
	})
}

// Version reports the recorded schema version, or NilVersion for a
// database no migration has touched yet.
func (d *migrateDriver) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	err := d.db.QueryRow("SELECT version, dirty FROM " + versionTable + " LIMIT 1").Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return database.NilVersion, false, nil
	case err != nil:
		return database.NilVersion, false, &database.Error{OrigErr: err, Err: "reading schema version"}
	}
	return version, dirty, nil
}

// Drop removes every application table, then vacuums. Internal
// sqlite_* tables cannot be dropped and are skipped.
func (d *migrateDriver) Drop() error {
	tables, err := d.listTables()
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return nil
	}

	err = d.withTx(func(tx *sql.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec("DROP TABLE " + table); err != nil {
				return &database.Error{OrigErr: err, Err: "dropping " + table}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	_, err = d.db.Exec("VACUUM")
	return err
}

func (d *migrateDriver) listTables() (tables []string, err error) {
	rows, err := d.db.Query("SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		return nil, &database.Error{OrigErr: err, Err: "listing tables"}
	}
	defer func() {
		if e := rows.Close(); e != nil {
			err = errors.Join(err, e)
		}
	}()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if name != "" && !strings.HasPrefix(name, "sqlite_") {
			tables = append(tables, name)
		}
	}
	return tables, rows.Err()
}

// withTx runs fn inside a transaction, rolling back when fn fails.
func (d *migrateDriver) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &database.Error{OrigErr: err, Err: "transaction start failed"}
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &database.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}
