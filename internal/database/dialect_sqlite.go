package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}

	return nil
}

func (d *SQLiteDialect) CreateDocumentsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			doc_key TEXT NOT NULL,
			doc TEXT NOT NULL,
			PRIMARY KEY (collection, doc_key)
		);
	`
}

func (d *SQLiteDialect) UpsertDocumentQuery() string {
	return `
		INSERT INTO documents (collection, doc_key, doc)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, doc_key) DO UPDATE SET doc = excluded.doc
	`
}
