package storage

import (
	"database/sql"
	"errors"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// OpenSqlite opens the local database with a shared cache so the pool and
// the migration runner see the same file.
func OpenSqlite(dialect, name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}
	connectionString := "file:" + name + "?cache=shared&mode=rwc"
	db, err := sql.Open(dialect, connectionString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateSqlite applies the goose migrations.
func MigrateSqlite(db *sql.DB, migrationsPath string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	if err := goose.Up(db, migrationsPath); err != nil {
		return err
	}

	return nil
}
