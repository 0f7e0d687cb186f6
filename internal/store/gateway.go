// Package store is the persistence gateway: named collections saved and
// loaded as opaque JSON documents. Every save overwrites the whole
// collection; there are no partial-document updates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names, one per entity type.
const (
	CollectionExams         = "exams"
	CollectionGroups        = "groups"
	CollectionUsers         = "users"
	CollectionHabilitations = "habilitations"
	CollectionResults       = "results"
)

// ErrNotFound is returned by Load when the named collection has never been
// saved. Callers fall back to their seed dataset.
var ErrNotFound = errors.New("collection not found")

type Gateway interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
}

// document is the persisted envelope: {"items":[...]}.
type document[T any] struct {
	Items []T `json:"items"`
}

// LoadCollection reads a collection and unwraps its items envelope. It fails
// soft: a missing collection, a read error or malformed JSON all yield the
// provided default instead of an error.
func LoadCollection[T any](ctx context.Context, g Gateway, name string, def []T) []T {
	raw, err := g.Load(ctx, name)
	if err != nil {
		return def
	}
	var doc document[T]
	if err := json.Unmarshal(raw, &doc); err != nil {
		return def
	}
	if doc.Items == nil {
		return def
	}
	return doc.Items
}

// SaveCollection wraps items in the envelope and overwrites the collection.
func SaveCollection[T any](ctx context.Context, g Gateway, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(document[T]{Items: items})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := g.Save(ctx, name, raw); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
