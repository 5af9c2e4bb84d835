package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/gate"
	"catalog-sync/core/logger"
	"catalog-sync/core/storage"
	"catalog-sync/feature/feed"
	"catalog-sync/feature/inventory"
	syncfeature "catalog-sync/feature/sync"

	"go.uber.org/zap"
)

// bootstrap loads configuration and builds the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newSyncService wires the feed reader, the gated inventory client and the
// optional report archive into a sync service.
func newSyncService(ctx context.Context, cfg *config.Config, l *zap.Logger) (*syncfeature.Service, error) {
	if err := cfg.Inventory.Validate(); err != nil {
		return nil, err
	}

	g := gate.New(cfg.Inventory.Concurrency)
	reader := feed.NewReader(cfg.Feed, l)
	client := inventory.NewClient(cfg.Inventory, g, l)

	var archive *syncfeature.Archive
	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			// Reports are best effort; the run goes ahead without them.
			l.Warn("Report storage unavailable", zap.Error(err))
		}
		archive = syncfeature.NewArchive(store, cfg.Storage.Bucket, cfg.Storage.Region, l)
	}

	l.Debug("Sync service ready",
		zap.String("feed", cfg.Feed.URL),
		zap.String("inventory", cfg.Inventory.BaseURL),
		zap.Int("concurrency", g.Capacity()),
		zap.Bool("archive", archive != nil),
	)

	return syncfeature.NewService(reader, client, inventory.NewTemplates(cfg.Inventory), archive, l), nil
}
