package reconcile

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"catalog-sync/feature/feed"
	"catalog-sync/feature/inventory"
)

// Summary holds counts describing a plan.
type Summary struct {
	// Remote is the number of remote products examined.
	Remote int `json:"remote"`
	// Offers is the number of feed offers examined.
	Offers int `json:"offers"`
	// Updates counts matched products whose price changed.
	Updates int `json:"updates"`
	// Creates counts offers with no remote product.
	Creates int `json:"creates"`
	// Unchanged counts matched products already at the feed price.
	Unchanged int `json:"unchanged"`
	// Untouched counts remote products absent from the feed.
	Untouched int `json:"untouched"`
	// CategoriesCreated counts folders created while planning.
	CategoriesCreated int `json:"categories_created"`
	// CategoriesPending counts folders a dry run would have created.
	CategoriesPending int `json:"categories_pending"`
}

// Plan is the outcome of a reconciliation pass.
// Updates and Creates never share an external code.
type Plan struct {
	// Updates are full remote records with corrected sale prices.
	Updates []inventory.Record `json:"-"`
	// Creates are new product payloads in external code order.
	Creates []inventory.Record `json:"-"`
	Summary Summary            `json:"summary"`
}

// Payloads returns updates followed by creations, ready for a push.
func (p *Plan) Payloads() []inventory.Record {
	out := make([]inventory.Record, 0, len(p.Updates)+len(p.Creates))
	out = append(out, p.Updates...)
	return append(out, p.Creates...)
}

// BuildPlan diffs feed offers against remote products.
// The offers map is not modified. Remote records that need an update are
// modified in place and returned in Updates.
func BuildPlan(
	ctx context.Context,
	offers map[string]feed.Offer,
	products []inventory.Record,
	cache *CategoryCache,
	tpl *inventory.Templates,
) (*Plan, error) {
	pending := maps.Clone(offers)
	if pending == nil {
		pending = map[string]feed.Offer{}
	}

	plan := &Plan{}
	plan.Summary.Remote = len(products)
	plan.Summary.Offers = len(offers)

	for _, product := range products {
		code := product.ExternalCode()
		offer, ok := pending[code]
		if !ok {
			plan.Summary.Untouched++
			continue
		}
		delete(pending, code)

		if applyPrice(product, MinorUnits(offer.Price), tpl) {
			plan.Updates = append(plan.Updates, product)
		} else {
			plan.Summary.Unchanged++
		}
	}

	for _, code := range slices.Sorted(maps.Keys(pending)) {
		payload, err := newProduct(ctx, pending[code], cache, tpl)
		if err != nil {
			return nil, fmt.Errorf("failed to build product %s: %w", code, err)
		}
		plan.Creates = append(plan.Creates, payload)
	}

	plan.Summary.Updates = len(plan.Updates)
	plan.Summary.Creates = len(plan.Creates)
	plan.Summary.CategoriesCreated = len(cache.Created())
	plan.Summary.CategoriesPending = len(cache.Pending())

	return plan, nil
}

// applyPrice sets the product's sale price to value and reports whether it changed.
func applyPrice(product inventory.Record, value int64, tpl *inventory.Templates) bool {
	current, ok := product.SalePrice()
	if !ok {
		if !product.SetSalePrice(value) {
			product["salePrices"] = []any{tpl.SalePrice(value)}
		}
		return true
	}
	if current == value {
		return false
	}
	product.SetSalePrice(value)
	return true
}

// newProduct builds the creation payload for an offer.
func newProduct(ctx context.Context, offer feed.Offer, cache *CategoryCache, tpl *inventory.Templates) (inventory.Record, error) {
	payload := inventory.Record{
		"name":                offer.Name,
		"code":                offer.ExternalCode,
		"externalCode":        offer.ExternalCode,
		"vat":                 tpl.VAT(),
		"vatEnabled":          true,
		"effectiveVat":        tpl.VAT(),
		"effectiveVatEnabled": true,
		"salePrices":          []any{tpl.SalePrice(MinorUnits(offer.Price))},
	}

	var attributes []any
	if url, ok := offer.URL.Get(); ok {
		attributes = append(attributes, tpl.URLAttribute(url))
	}
	if vendor, ok := offer.Vendor.Get(); ok {
		attributes = append(attributes, tpl.VendorAttribute(vendor))
	}
	if len(attributes) > 0 {
		payload["attributes"] = attributes
	}

	if article, ok := offer.Article.Get(); ok {
		payload["article"] = article
	}
	if description, ok := offer.Description.Get(); ok {
		payload["description"] = description
	}

	if categoryID, ok := offer.CategoryID.Get(); ok {
		meta, err := cache.Resolve(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if meta != nil {
			payload["productFolder"] = map[string]any{"meta": meta}
		}
	}

	return payload, nil
}
