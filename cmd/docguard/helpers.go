package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/docguard-ph/docguard/internal/analyzer"
	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/config"
	"github.com/docguard-ph/docguard/internal/engine"
	"github.com/docguard-ph/docguard/internal/policy"
	"github.com/docguard-ph/docguard/internal/service"
	"github.com/docguard-ph/docguard/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadPolicy returns the stored document policy, falling back to the
// defaults when none has been saved.
func loadPolicy(ctx context.Context, store service.Storage) (policy.Policy, error) {
	p, err := store.LoadPolicy(ctx)
	if errors.Is(err, common.ErrNotFound) {
		slog.Debug("No stored policy, using defaults")
		return policy.Default(), nil
	}
	if err != nil {
		return policy.Policy{}, err
	}
	return p, nil
}

// initEngine wires storage and policy into the transaction engine.
func initEngine(ctx context.Context) (*engine.Engine, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	p, err := loadPolicy(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return engine.New(store, p), store, nil
}

// initAnalyzer builds the receipt-analysis client from config.
func initAnalyzer() (service.ReceiptAnalyzer, error) {
	baseURL := viper.GetString("analyzer.url")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: set analyzer.url in the config file or DOCGUARD_ANALYZER_URL", common.ErrMissingConfig)
	}

	timeout := viper.GetDuration("analyzer.timeout")

	return analyzer.NewClient(analyzer.Config{
		BaseURL: baseURL,
		Timeout: timeout,
		Retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
		},
	})
}
