package kv

import "context"

// Store holds one JSON document under one well-known key. The reservation
// collection is always loaded and saved whole; there are no partial updates.
type Store interface {
	// Load returns the stored document. ok is false when nothing has been
	// saved yet, which is not an error.
	Load(ctx context.Context) (data []byte, ok bool, err error)

	Save(ctx context.Context, data []byte) error
}
