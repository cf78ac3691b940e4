package repository

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

//go:embed schema_sqlite.sql
var schemaSQLite string

//go:embed schema_mysql.sql
var schemaMySQL string

// NewDB opens a database connection pool for the given driver ("sqlite"
// or "mysql") and bootstraps the schema. The schema statements are
// idempotent, so reopening an existing database is safe.
func NewDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "sqlite":
		return newSQLiteDB(dsn)
	case "mysql":
		return newMySQLDB(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func newSQLiteDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection keeps the pragmas in force everywhere;
	// SQLite only has one writer anyway.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if err := execSchema(db, schemaSQLite); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func newMySQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := execSchema(db, schemaMySQL); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// execSchema runs the embedded schema one statement at a time; the
// MySQL driver rejects multi-statement Exec calls by default.
func execSchema(db *sql.DB, schema string) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// formatTime formats a time.Time to RFC3339Nano for storage. Timestamps
// are stored as text so both drivers scan them the same way.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a stored RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// isDuplicateError reports whether err is a unique-constraint violation
// from either supported driver.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // MySQL error 1062
		strings.Contains(msg, "UNIQUE constraint failed") // SQLite
}
