package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"catalog-sync/core/config"
	"catalog-sync/feature/feed"
	"catalog-sync/feature/reconcile"

	"go.uber.org/zap"
)

// Fetches the configured feed and reports what the sync would see.
// Optional arguments are external codes to look up.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	reader := feed.NewReader(cfg.Feed, zap.NewNop())
	catalog, err := reader.Fetch(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== FEED ===")
	fmt.Printf("URL: %s\n", cfg.Feed.URL)
	fmt.Printf("Offers keyed by external code: %d\n", len(catalog.Offers))
	fmt.Printf("Offers skipped (no xmlId): %d\n", len(catalog.Skipped))
	fmt.Printf("Duplicate external codes: %d\n", catalog.Duplicates)
	fmt.Printf("Categories: %d\n", len(catalog.Categories))

	// Category ids referenced by offers but not declared in the feed
	fmt.Println("\n=== UNDECLARED CATEGORIES ===")
	undeclared := map[string]int{}
	for _, offer := range catalog.Offers {
		if id, ok := offer.CategoryID.Get(); ok {
			if _, declared := catalog.Categories[id]; !declared {
				undeclared[id]++
			}
		}
	}
	ids := make([]string, 0, len(undeclared))
	for id := range undeclared {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("category %s referenced by %d offers\n", id, undeclared[id])
	}
	if len(ids) == 0 {
		fmt.Println("none")
	}

	fmt.Println("\n=== LOOKUP ===")
	for _, code := range os.Args[1:] {
		offer, ok := catalog.Offers[code]
		if !ok {
			fmt.Printf("%s: NOT FOUND\n", code)
			continue
		}
		fmt.Printf("%s: id=%s name=%q price=%s minor=%d category=%s\n",
			code, offer.ID, offer.Name, offer.Price, reconcile.MinorUnits(offer.Price), offer.CategoryID.OrElse("-"))
	}

	output := map[string]interface{}{
		"offers":     len(catalog.Offers),
		"skipped":    catalog.Skipped,
		"duplicates": catalog.Duplicates,
		"categories": len(catalog.Categories),
		"undeclared": undeclared,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_feed.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_feed.json for details.")
}
