package storage

import (
	"context"
)

// Repository is durable key/value storage, the client's equivalent of
// browser localStorage. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
