package sync

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"catalog-sync/core/logger"
	"catalog-sync/feature/feed"
	"catalog-sync/feature/inventory"
	"catalog-sync/feature/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FeedSource provides the parsed feed.
type FeedSource interface {
	Fetch(ctx context.Context) (*feed.Catalog, error)
}

// Inventory is the subset of the inventory client a run needs.
type Inventory interface {
	FetchProducts(ctx context.Context) ([]inventory.Record, error)
	FetchCategories(ctx context.Context) (map[string]inventory.Record, error)
	CreateCategory(ctx context.Context, code string) (inventory.Meta, error)
	Push(ctx context.Context, payloads []inventory.Record) (inventory.PushReport, error)
}

// Service runs synchronizations.
type Service struct {
	feed      FeedSource
	inventory Inventory
	templates *inventory.Templates
	archive   *Archive
	logger    *zap.Logger
	group     singleflight.Group
}

// NewService creates a sync service. archive may be nil.
func NewService(source FeedSource, inv Inventory, templates *inventory.Templates, archive *Archive, logger *zap.Logger) *Service {
	return &Service{
		feed:      source,
		inventory: inv,
		templates: templates,
		archive:   archive,
		logger:    logger,
	}
}

// Run performs one synchronization.
func (s *Service) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    opts.DryRun,
	}
	l := logger.WithRunID(s.logger, result.RunID)
	l.Info("Sync started", zap.Bool("dry_run", opts.DryRun))

	catalog, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	result.FeedOffers = len(catalog.Offers)
	result.FeedCategories = len(catalog.Categories)
	result.SkippedOffers = catalog.Skipped
	l.Info("Offers from feed loaded", zap.Int("offers", len(catalog.Offers)))

	products, err := s.inventory.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	l.Info("Products from inventory loaded", zap.Int("products", len(products)))

	folders, err := s.inventory.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	l.Info("Categories from inventory loaded", zap.Int("categories", len(folders)))

	cache := reconcile.NewCategoryCache(folders, s.inventory, opts.DryRun, l)
	plan, err := reconcile.BuildPlan(ctx, catalog.Offers, products, cache, s.templates)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}
	result.Plan = plan.Summary
	result.CategoriesCreated = cache.Created()
	result.CategoriesPending = cache.Pending()
	result.FeedCategoriesLinked = cache.Annotate(catalog.Categories)

	l.Info("All products processed")
	l.Info("Offers to update", zap.Int("count", plan.Summary.Updates))
	l.Info("Offers to create", zap.Int("count", plan.Summary.Creates))

	var pushErr error
	if opts.DryRun {
		l.Info("Dry run, push skipped", zap.Int("payloads", len(plan.Payloads())))
	} else {
		result.Push, pushErr = s.inventory.Push(ctx, plan.Payloads())
	}

	result.Elapsed = time.Since(result.StartedAt)
	result.ElapsedText = result.Elapsed.Round(time.Millisecond).String()
	result.Summary = summarize(result)

	if s.archive != nil {
		name, err := s.archive.Save(ctx, result)
		if err != nil {
			l.Warn("Failed to archive report", zap.Error(err))
		} else {
			result.Report = name
		}
	}

	l.Info("Sync finished",
		zap.Duration("elapsed", result.Elapsed),
		zap.String("summary", result.Summary),
	)

	if pushErr != nil {
		return result, fmt.Errorf("failed to push payloads: %w", pushErr)
	}
	return result, nil
}

// Trigger runs a synchronization, sharing the run with concurrent callers
// using the same options. The boolean reports whether the result was shared.
func (s *Service) Trigger(ctx context.Context, opts Options) (*Result, bool, error) {
	key := "sync:dry_run=" + strconv.FormatBool(opts.DryRun)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		// The run outlives any single caller.
		return s.Run(context.WithoutCancel(ctx), opts)
	})
	result, _ := v.(*Result)
	return result, shared, err
}

func summarize(r *Result) string {
	if r.DryRun {
		return fmt.Sprintf("Dry run: %d to update, %d to create, %d categories to create (%s)",
			r.Plan.Updates, r.Plan.Creates, len(r.CategoriesPending), r.ElapsedText)
	}
	msg := fmt.Sprintf("Offers processed: %d updated, %d created (%s)", r.Plan.Updates, r.Plan.Creates, r.ElapsedText)
	if r.Push.FailedBatches > 0 {
		msg += fmt.Sprintf(", %d of %d batches failed", r.Push.FailedBatches, r.Push.Batches)
	}
	return msg
}
