package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"quiz-admin/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisDocumentStore implements domain.DocumentStore on top of a Redis
// client. Each document lives under its own key as a JSON blob; a set per
// collection indexes the document keys.
type RedisDocumentStore struct {
	client *redis.Client
}

// NewRedisDocumentStore creates a new instance of RedisDocumentStore.
// It expects a connected *redis.Client.
func NewRedisDocumentStore(client *redis.Client) domain.DocumentStore {
	return &RedisDocumentStore{client: client}
}

// Get retrieves a document by key.
// It translates redis.Nil to domain.ErrDocumentNotFound.
func (s *RedisDocumentStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, DocumentKey(collection, key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return []byte(val), nil
}

// GetAll retrieves every document in the collection, keyed by storage key.
func (s *RedisDocumentStore) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	keys, err := s.client.SMembers(ctx, CollectionKey(collection)).Result()
	if err != nil {
		return nil, err
	}

	docs := make(map[string][]byte, len(keys))
	for _, key := range keys {
		val, err := s.client.Get(ctx, DocumentKey(collection, key)).Result()
		if err != nil {
			if err == redis.Nil {
				// Stale index entry, the document itself is gone.
				continue
			}
			return nil, err
		}
		docs[key] = []byte(val)
	}
	return docs, nil
}

// Set creates or fully overwrites the document under key and records the key
// in the collection index.
func (s *RedisDocumentStore) Set(ctx context.Context, collection, key string, doc []byte) error {
	if err := s.client.Set(ctx, DocumentKey(collection, key), doc, 0).Err(); err != nil {
		return err
	}
	return s.client.SAdd(ctx, CollectionKey(collection), key).Err()
}

// Update merges the given fields into the existing document. The merge is a
// read-modify-write; per-key writes stay last-write-wins.
func (s *RedisDocumentStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	existing, err := s.Get(ctx, collection, key)
	if err != nil {
		return err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(existing, &doc); err != nil {
		return fmt.Errorf("failed to decode document %s/%s: %w", collection, key, err)
	}
	for k, v := range fields {
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, key, err)
	}
	return s.client.Set(ctx, DocumentKey(collection, key), merged, 0).Err()
}

// Delete removes the document and its index entry. Deleting an absent key is
// a no-op.
func (s *RedisDocumentStore) Delete(ctx context.Context, collection, key string) error {
	if err := s.client.Del(ctx, DocumentKey(collection, key)).Err(); err != nil {
		return err
	}
	return s.client.SRem(ctx, CollectionKey(collection), key).Err()
}

// Query returns all documents in the collection ordered by a numeric field.
// Documents missing the field sort last; ties break on the storage key so the
// order is deterministic.
func (s *RedisDocumentStore) Query(ctx context.Context, collection, orderBy string, desc bool) ([]domain.KeyedDocument, error) {
	docs, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	type entry struct {
		doc      domain.KeyedDocument
		value    float64
		hasValue bool
	}

	entries := make([]entry, 0, len(docs))
	for key, doc := range docs {
		e := entry{doc: domain.KeyedDocument{Key: key, Doc: doc}}
		var fields map[string]interface{}
		if err := json.Unmarshal(doc, &fields); err == nil {
			if v, ok := fields[orderBy].(float64); ok {
				e.value = v
				e.hasValue = true
			}
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasValue != b.hasValue {
			return a.hasValue
		}
		if a.value != b.value {
			if desc {
				return a.value > b.value
			}
			return a.value < b.value
		}
		return a.doc.Key < b.doc.Key
	})

	out := make([]domain.KeyedDocument, len(entries))
	for i, e := range entries {
		out[i] = e.doc
	}
	return out, nil
}

// Ping checks the health of the Redis server.
func (s *RedisDocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
