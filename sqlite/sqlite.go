package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	_ "github.com/mattn/go-sqlite3"
)

// Schema migrations for the subscriptions store, applied in lexical
// order on Open.
//
//go:embed migration/*.sql
var migrationFS embed.FS

// DB holds the connection to the subscriptions database.
type DB struct {
	sqlDB  *sql.DB
	ctx    context.Context
	cancel func()

	path string
}

// NewDB returns a database backed by the SQLite file at path
func NewDB(path string) *DB {
	db := &DB{
		path: path,
	}

	db.ctx, db.cancel = context.WithCancel(context.Background())

	return db
}

// Open opens the database and brings the subscriptions schema up to date
func (db *DB) Open() (err error) {
	if db.path == "" {
		return errors.New("database path required")
	}

	if db.sqlDB != nil {
		return nil
	}

	if db.sqlDB, err = sql.Open("sqlite3", db.path); err != nil {
		return fmt.Errorf("failed to open %s: %w", db.path, err)
	}

	if err := db.migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}

func (db *DB) migrate() error {
	if _, err := db.sqlDB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("cannot create schema_migrations table: %w", err)
	}

	names, err := fs.Glob(migrationFS, "migration/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		if err := db.migrateFile(name); err != nil {
			return fmt.Errorf("migration %q: %w", name, err)
		}
	}

	return nil
}

// migrateFile runs a single migration inside a transaction, skipping it
// if a previous Open already recorded it.
func (db *DB) migrateFile(name string) error {
	tx, err := db.sqlDB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name).Scan(&n); err != nil {
		return err
	}
	if n != 0 {
		return nil
	}

	buf, err := fs.ReadFile(migrationFS, name)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(buf)); err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT INTO schema_migrations (name) VALUES (?)`, name); err != nil {
		return err
	}

	return tx.Commit()
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.sqlDB == nil {
		return nil
	}

	db.cancel()

	if err := db.sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
