// Package sync orchestrates one catalog synchronization run.
//
// A run fetches the feed, loads remote products and product folders,
// builds a reconcile.Plan and pushes its payloads in batches. The outcome is
// returned as a Result and, when storage is enabled, archived as a JSON
// report.
//
// # HTTP
//
//	POST /sync            run a synchronization
//	POST /sync?dry_run=1  plan without creating folders or pushing
//
// Concurrent trigger requests with the same mode share a single run.
package sync
