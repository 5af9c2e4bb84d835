package sync

import (
	"time"

	"catalog-sync/feature/inventory"
	"catalog-sync/feature/reconcile"
)

// Options controls a single run.
type Options struct {
	// DryRun builds the plan without creating folders or pushing payloads.
	DryRun bool `json:"dry_run"`
}

// Result describes a finished run.
type Result struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	DryRun    bool      `json:"dry_run"`

	// FeedOffers is the number of offers keyed by external code.
	FeedOffers int `json:"feed_offers"`
	// FeedCategories is the number of feed categories.
	FeedCategories int `json:"feed_categories"`
	// FeedCategoriesLinked counts feed categories matched to a remote folder.
	FeedCategoriesLinked int `json:"feed_categories_linked"`
	// SkippedOffers lists feed offer ids dropped for lack of an external code.
	SkippedOffers []string `json:"skipped_offers,omitempty"`

	Plan reconcile.Summary   `json:"plan"`
	Push inventory.PushReport `json:"push"`

	// CategoriesCreated lists folder codes created during the run.
	CategoriesCreated []string `json:"categories_created,omitempty"`
	// CategoriesPending lists folder codes a dry run would create.
	CategoriesPending []string `json:"categories_pending,omitempty"`

	Elapsed time.Duration `json:"-"`
	// ElapsedText is Elapsed in human form.
	ElapsedText string `json:"elapsed"`
	// Report is the object name of the archived report, if any.
	Report string `json:"report,omitempty"`
	// Summary is the human-readable outcome.
	Summary string `json:"summary"`
}
