package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for PostgreSQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	return nil
}

func (d *PostgresDialect) CreateDocumentsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			doc_key TEXT NOT NULL,
			doc TEXT NOT NULL,
			PRIMARY KEY (collection, doc_key)
		);
	`
}

func (d *PostgresDialect) UpsertDocumentQuery() string {
	return `
		INSERT INTO documents (collection, doc_key, doc)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, doc_key) DO UPDATE SET doc = excluded.doc
	`
}
