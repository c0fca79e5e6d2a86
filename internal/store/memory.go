package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory Store implementation. State is lost on restart; it
// backs development runs and tests.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]json.RawMessage)}
}

// Get retrieves the document at collection/key.
func (m *Memory) Get(ctx context.Context, collection, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if doc, ok := m.collections[collection][key]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
}

// Put writes doc at collection/key.
func (m *Memory) Put(ctx context.Context, collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]json.RawMessage)
	}
	m.collections[collection][key] = raw
	return nil
}

// Push writes doc under a generated key and returns the key.
func (m *Memory) Push(ctx context.Context, collection string, doc any) (string, error) {
	key := uuid.NewString()
	if err := m.Put(ctx, collection, key, doc); err != nil {
		return "", err
	}
	return key, nil
}

// Query returns the documents of a collection matching q.
func (m *Memory) Query(ctx context.Context, collection string, q Query) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	docs := make(map[string]json.RawMessage, len(m.collections[collection]))
	for key, doc := range m.collections[collection] {
		docs[key] = doc
	}
	m.mu.RUnlock()

	return applyQuery(docs, q), nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
