package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hangman/internal/database"
)

// SQL is a Store backed by a relational database through the dialect-aware
// connection wrapper. All documents live in a single table keyed by
// (collection, doc_key); queries scan the collection and match in memory,
// which is proportionate to the collection sizes this service handles.
type SQL struct {
	db *database.DB
}

// NewSQL constructs a Store over an initialized database connection.
func NewSQL(db *database.DB) *SQL {
	return &SQL{db: db}
}

// Get retrieves the document at collection/key.
func (s *SQL) Get(ctx context.Context, collection, key string) (json.RawMessage, error) {
	query := "SELECT doc FROM documents WHERE collection = ? AND doc_key = ?"

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, collection, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, key, err)
	}
	return doc, nil
}

// Put writes doc at collection/key, creating or replacing it.
func (s *SQL) Put(ctx context.Context, collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, s.db.Dialect.UpsertDocumentQuery(), collection, key, string(raw)); err != nil {
		return fmt.Errorf("failed to put document %s/%s: %w", collection, key, err)
	}
	return nil
}

// Push writes doc under a generated key and returns the key.
func (s *SQL) Push(ctx context.Context, collection string, doc any) (string, error) {
	key := uuid.NewString()
	if err := s.Put(ctx, collection, key, doc); err != nil {
		return "", err
	}
	return key, nil
}

// Query returns the documents of a collection matching q.
func (s *SQL) Query(ctx context.Context, collection string, q Query) (map[string]json.RawMessage, error) {
	query := "SELECT doc_key, doc FROM documents WHERE collection = ?"

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var doc []byte
		if err := rows.Scan(&key, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs[key] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	return applyQuery(docs, q), nil
}

// Close closes the underlying database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}
