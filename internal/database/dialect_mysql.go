package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for MySQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	return nil
}

func (d *MySQLDialect) CreateDocumentsTableQuery() string {
	// MySQL cannot index unbounded TEXT columns; keys are uuid-sized
	return `
		CREATE TABLE IF NOT EXISTS documents (
			collection VARCHAR(64) NOT NULL,
			doc_key VARCHAR(64) NOT NULL,
			doc TEXT NOT NULL,
			PRIMARY KEY (collection, doc_key)
		);
	`
}

func (d *MySQLDialect) UpsertDocumentQuery() string {
	return `
		INSERT INTO documents (collection, doc_key, doc)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE doc = VALUES(doc)
	`
}
