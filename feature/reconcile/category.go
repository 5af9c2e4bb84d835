package reconcile

import (
	"context"
	"sync"

	"catalog-sync/core/utils"
	"catalog-sync/feature/feed"
	"catalog-sync/feature/inventory"

	"go.uber.org/zap"
)

// CategoryCreator creates a remote product folder and returns its meta.
type CategoryCreator interface {
	CreateCategory(ctx context.Context, code string) (inventory.Meta, error)
}

// CategoryCache resolves product folder references by external code.
// It is seeded with the folders fetched at the start of a run and creates
// missing folders on first use. It lives for a single run.
type CategoryCache struct {
	mu      sync.Mutex
	known   map[string]inventory.Meta
	creator CategoryCreator
	dryRun  bool
	created []string
	pending []string
	logger  *zap.Logger
}

// NewCategoryCache creates a cache seeded with folders indexed by external code.
// In dry-run mode missing folders are recorded as pending instead of created.
func NewCategoryCache(folders map[string]inventory.Record, creator CategoryCreator, dryRun bool, logger *zap.Logger) *CategoryCache {
	known := make(map[string]inventory.Meta, len(folders))
	for code, folder := range folders {
		if meta := folder.Meta(); meta != nil {
			known[code] = meta
		}
	}
	return &CategoryCache{
		known:   known,
		creator: creator,
		dryRun:  dryRun,
		logger:  logger,
	}
}

// Resolve returns the folder meta for code, creating the folder if needed.
// A nil meta with a nil error means the folder is pending (dry run).
func (c *CategoryCache) Resolve(ctx context.Context, code string) (inventory.Meta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if meta, ok := c.known[code]; ok {
		return meta, nil
	}

	if c.dryRun {
		c.known[code] = nil
		c.pending = append(c.pending, code)
		c.logger.Info("Category would be created", zap.String("external_code", code))
		return nil, nil
	}

	meta, err := c.creator.CreateCategory(ctx, code)
	if err != nil {
		return nil, err
	}
	c.known[code] = meta
	c.created = append(c.created, code)
	return meta, nil
}

// Annotate links feed categories to the folders known to the cache and
// returns how many were linked.
func (c *CategoryCache) Annotate(categories map[string]feed.Category) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	linked := 0
	for id, category := range categories {
		meta, ok := c.known[id]
		if !ok || meta == nil {
			continue
		}
		category.Remote = utils.Some(map[string]any(meta))
		categories[id] = category
		linked++
	}
	return linked
}

// Created returns the codes of folders created during the run, in creation order.
func (c *CategoryCache) Created() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.created...)
}

// Pending returns the codes of folders a dry run would have created.
func (c *CategoryCache) Pending() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.pending...)
}
