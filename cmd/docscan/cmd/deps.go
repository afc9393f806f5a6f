package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mfenderov/docscan/internal/database"
	"github.com/mfenderov/docscan/internal/elasticsearch"
	"github.com/mfenderov/docscan/internal/scan"
	"github.com/mfenderov/docscan/internal/storage"
)

// openStore opens the SQLite database named in the config.
func openStore() (*database.Store, error) {
	store, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	slog.Debug("database opened", "path", store.Path())
	return store, nil
}

// newSearchClient returns nil when Elasticsearch is disabled.
func newSearchClient(ctx context.Context) (*elasticsearch.Client, error) {
	if !cfg.Elasticsearch.Enabled {
		return nil, nil
	}

	esClient, err := elasticsearch.New(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Index:     cfg.Elasticsearch.Index,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ES client: %w", err)
	}
	if err := esClient.CreateIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare ES index: %w", err)
	}
	slog.Info("search index enabled", "index", cfg.Elasticsearch.Index)
	return esClient, nil
}

// newStorageClient returns nil when the upload archive is disabled.
func newStorageClient(ctx context.Context) (*storage.Client, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}

	storageClient, err := storage.New(storage.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		UseSSL:          cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storageClient.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket: %w", err)
	}
	slog.Info("upload archive enabled", "bucket", storageClient.Bucket())
	return storageClient, nil
}

// newEngine wires the scan engine with the optional archive and search index.
// The search client is returned separately for the commands that query it.
func newEngine(ctx context.Context, store *database.Store) (*scan.Engine, *elasticsearch.Client, error) {
	var archiver scan.Archiver
	storageClient, err := newStorageClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	if storageClient != nil {
		archiver = storageClient
	}

	var indexer scan.Indexer
	esClient, err := newSearchClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	if esClient != nil {
		indexer = esClient
	}

	return scan.New(store, store, archiver, indexer), esClient, nil
}
