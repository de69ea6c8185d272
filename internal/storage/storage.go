package storage

import "context"

// KeyValueStore is the persistent string-keyed store the user database is built on.
// Get reports ok == false for an absent key. Remove of an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
