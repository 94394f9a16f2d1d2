package domain

import "context"

// DocumentStore is the port to the external key-addressed, schema-less
// persistence service. Documents are opaque JSON blobs organized into named
// collections; per-key writes are last-write-wins.
type DocumentStore interface {
	// Get returns the document under key, or ErrDocumentNotFound.
	Get(ctx context.Context, collection, key string) ([]byte, error)
	// GetAll returns every document in the collection keyed by storage key.
	GetAll(ctx context.Context, collection string) (map[string][]byte, error)
	// Set creates or fully overwrites the document under key.
	Set(ctx context.Context, collection, key string, doc []byte) error
	// Update applies a partial overwrite: the given fields are merged into
	// the existing document. Returns ErrDocumentNotFound when absent.
	Update(ctx context.Context, collection, key string, fields map[string]interface{}) error
	// Delete removes the document under key. Deleting an absent key is a
	// no-op.
	Delete(ctx context.Context, collection, key string) error
	// Query returns all documents in the collection ordered by a numeric
	// field, descending when desc is true. Documents missing the field sort
	// last.
	Query(ctx context.Context, collection, orderBy string, desc bool) ([]KeyedDocument, error)
	// Ping checks connectivity to the backing service.
	Ping(ctx context.Context) error
}

// KeyedDocument pairs a document with its storage key.
type KeyedDocument struct {
	Key string
	Doc []byte
}
