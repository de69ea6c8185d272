package storage

import "context"

// Ensure Namespaced satisfies the KeyValueStore interface at compile time.
var _ KeyValueStore = (*Namespaced)(nil)

// Namespaced scopes every key of an underlying store under a fixed prefix,
// so several profiles can share one backend without seeing each other's keys.
type Namespaced struct {
	inner  KeyValueStore
	prefix string
}

// Namespace wraps store so that key k is stored as "<prefix>:k".
func Namespace(store KeyValueStore, prefix string) *Namespaced {
	return &Namespaced{inner: store, prefix: prefix + ":"}
}

// Get reads key from the namespace.
func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

// Set writes key into the namespace.
func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

// Remove deletes key from the namespace.
func (n *Namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.prefix+key)
}
