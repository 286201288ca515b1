package store

import (
	"context"
)

// RecordStore defines the interface for the namespaced key-value store every
// repository is built on. Each key holds one opaque serialized payload,
// typically a JSON array of records, replaced wholesale on every write.
//
// The store provides no concurrency control across writers and no
// transactions spanning multiple keys: two related writes issued by one
// logical operation are only ordered because the caller awaits the first
// before issuing the second. Last writer wins.
type RecordStore interface {
	// Read returns the payload stored under key, or (nil, nil) if the key
	// has never been written. Absence is a normal outcome, not an error.
	Read(ctx context.Context, key string) ([]byte, error)

	// WriteAll replaces the entire payload under key.
	WriteAll(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}
