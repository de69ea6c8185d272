package main

import (
	"context"
	"fmt"

	"github.com/hongminglow/quantum-trade/internal/config"
	"github.com/hongminglow/quantum-trade/internal/storage"
	"github.com/hongminglow/quantum-trade/internal/storage/memory"
	postgres "github.com/hongminglow/quantum-trade/internal/storage/postgres"
	"github.com/hongminglow/quantum-trade/internal/storage/s3store"
	"github.com/hongminglow/quantum-trade/internal/storage/sqlite"
)

// openBackend returns the configured key-value store and a function releasing it.
func openBackend(ctx context.Context, cfg config.Config) (storage.KeyValueStore, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.New(), func() {}, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.DriverPostgres:
		s, err := postgres.NewKVStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverS3:
		client, err := s3store.NewClient(ctx, s3store.Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return s3store.New(client, cfg.S3.Bucket, cfg.S3.Prefix), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
