package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/quantum-trade/internal/storage"
	"github.com/hongminglow/quantum-trade/internal/storage/storagetest"
)

// TestKVIntegration runs the store contract against a live database.
func TestKVIntegration(t *testing.T) {
	if os.Getenv("RUN_KV_INTEGRATION") != "true" {
		t.Skip("set RUN_KV_INTEGRATION=true to run this integration test")
	}

	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Overload(path)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewKVStore(ctx, dbURL)
	require.NoError(t, err)
	defer store.Close()

	// each subtest gets its own namespace so reruns don't see stale rows
	storagetest.Run(t, func(t *testing.T) storage.KeyValueStore {
		return storage.Namespace(store, fmt.Sprintf("kvtest_%d", time.Now().UnixNano()))
	})
}
