// Package store provides the keyed document store the service persists to:
// flat collections of JSON documents addressed by generated string keys, with
// a narrow query facility over a single document field.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Collections used by the service.
const (
	Games  = "games"
	Users  = "users"
	Scores = "scores"
)

// ErrNotFound is returned by Get when no document exists at the key.
var ErrNotFound = errors.New("document not found")

// Query narrows a collection scan. OrderBy names the document field the query
// operates on; EqualTo keeps only documents whose field equals the value;
// LimitToLast keeps only the LimitToLast documents with the highest field
// values. Results are an unordered key-to-document mapping either way.
type Query struct {
	OrderBy     string
	EqualTo     string
	LimitToLast int
}

// Store is the persistence interface for the service's collections.
// Implementations may be backed by memory (development/tests) or SQL.
type Store interface {
	// Get retrieves the document at collection/key, or ErrNotFound.
	Get(ctx context.Context, collection, key string) (json.RawMessage, error)

	// Put writes doc at collection/key, creating or replacing it.
	Put(ctx context.Context, collection, key string, doc any) error

	// Push writes doc under a freshly generated key and returns the key.
	Push(ctx context.Context, collection string, doc any) (string, error)

	// Query returns the documents of a collection matching q. A zero Query
	// returns the whole collection.
	Query(ctx context.Context, collection string, q Query) (map[string]json.RawMessage, error)

	// Close releases any underlying resources.
	Close() error
}

// applyQuery filters and trims decoded documents according to q. Shared by
// backends that scan whole collections.
func applyQuery(docs map[string]json.RawMessage, q Query) map[string]json.RawMessage {
	if q.OrderBy == "" {
		return docs
	}

	type entry struct {
		key   string
		value any
		doc   json.RawMessage
	}

	var entries []entry
	for key, doc := range docs {
		var fields map[string]any
		if err := json.Unmarshal(doc, &fields); err != nil {
			continue
		}
		value := fields[q.OrderBy]
		if q.EqualTo != "" {
			s, ok := value.(string)
			if !ok || s != q.EqualTo {
				continue
			}
		}
		entries = append(entries, entry{key: key, value: value, doc: doc})
	}

	if q.LimitToLast > 0 && len(entries) > q.LimitToLast {
		sort.SliceStable(entries, func(i, j int) bool {
			return lessFieldValue(entries[i].value, entries[j].value)
		})
		entries = entries[len(entries)-q.LimitToLast:]
	}

	matched := make(map[string]json.RawMessage, len(entries))
	for _, e := range entries {
		matched[e.key] = e.doc
	}
	return matched
}

// lessFieldValue orders two decoded JSON field values: numerically when both
// are numbers, lexically otherwise.
func lessFieldValue(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
