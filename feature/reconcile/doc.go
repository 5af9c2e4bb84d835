// Package reconcile computes the changes needed to bring the inventory
// catalog in line with the feed.
//
// BuildPlan joins feed offers and remote products on external code. Matched
// products whose sale price differs become updates, unmatched offers become
// creation payloads, and remote products absent from the feed are left
// alone. Product folders referenced by new offers are resolved through a
// per-run CategoryCache that creates each missing folder at most once.
//
// Prices are compared in minor units: MinorUnits rounds price × 100 half
// away from zero using exact decimal arithmetic.
package reconcile
