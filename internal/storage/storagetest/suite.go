// Package storagetest holds behavior checks shared by every KeyValueStore backend.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/quantum-trade/internal/storage"
)

// Run exercises the KeyValueStore contract against stores produced by newStore.
// Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) storage.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", `[{"a":1}]`))
		v, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `[{"a":1}]`, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", "old"))
		require.NoError(t, s.Set(ctx, "k", "new"))
		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "new", v)
	})

	t.Run("empty value is present", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", ""))
		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", "v"))
		require.NoError(t, s.Remove(ctx, "k"))
		require.NoError(t, s.Remove(ctx, "k"))
		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		s := newStore(t)
		a := storage.Namespace(s, "a")
		b := storage.Namespace(s, "b")
		require.NoError(t, a.Set(ctx, "quantum_user", "alice"))

		_, ok, err := b.Get(ctx, "quantum_user")
		require.NoError(t, err)
		require.False(t, ok)

		_, ok, err = s.Get(ctx, "quantum_user")
		require.NoError(t, err)
		require.False(t, ok)

		v, ok, err := s.Get(ctx, "a:quantum_user")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "alice", v)

		require.NoError(t, b.Remove(ctx, "quantum_user"))
		v, _, err = a.Get(ctx, "quantum_user")
		require.NoError(t, err)
		require.Equal(t, "alice", v)
	})
}
