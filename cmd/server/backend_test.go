package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/quantum-trade/internal/config"
	"github.com/hongminglow/quantum-trade/internal/storage/memory"
	"github.com/hongminglow/quantum-trade/internal/storage/sqlite"
)

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	kv, closeFn, err := openBackend(ctx, config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	require.IsType(t, &memory.Store{}, kv)
	closeFn()

	kv, closeFn, err = openBackend(ctx, config.Config{
		StorageDriver: config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "q.db"),
	})
	require.NoError(t, err)
	require.IsType(t, &sqlite.Store{}, kv)
	require.NoError(t, kv.Set(ctx, "k", "v"))
	closeFn()

	_, _, err = openBackend(ctx, config.Config{StorageDriver: "etcd"})
	require.Error(t, err)
}
