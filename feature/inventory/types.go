package inventory

import (
	"fmt"

	"catalog-sync/core/utils"
)

// Entity names used in API paths.
const (
	EntityProduct       = "product"
	EntityProductFolder = "productfolder"
)

// Meta is a remote metadata reference (href, type, mediaType, ...).
type Meta map[string]any

// Record is a remote entity as returned by the API.
// It is kept untyped so every remote-managed field survives an update round trip.
type Record map[string]any

// ExternalCode returns the join key of the record.
func (r Record) ExternalCode() string {
	return utils.ToString(r["externalCode"])
}

// Meta returns the record's metadata reference, or nil.
func (r Record) Meta() Meta {
	switch m := r["meta"].(type) {
	case Meta:
		return m
	case map[string]any:
		return Meta(m)
	default:
		return nil
	}
}

// salePrice returns the first sale price entry.
func (r Record) salePrice() (map[string]any, bool) {
	prices, ok := r["salePrices"].([]any)
	if !ok || len(prices) == 0 {
		return nil, false
	}
	entry, ok := prices[0].(map[string]any)
	return entry, ok
}

// SalePrice returns the first sale price in minor units.
func (r Record) SalePrice() (int64, bool) {
	entry, ok := r.salePrice()
	if !ok {
		return 0, false
	}
	return utils.ToInt64(entry["value"])
}

// SetSalePrice overwrites the first sale price value.
// It reports false when the record has no sale price entry.
func (r Record) SetSalePrice(value int64) bool {
	entry, ok := r.salePrice()
	if !ok {
		return false
	}
	entry["value"] = value
	return true
}

// APIError is returned when the inventory API answers with an unexpected status.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory API %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// PushReport summarizes a batched push.
type PushReport struct {
	// Payloads is the number of payloads submitted.
	Payloads int `json:"payloads"`
	// Batches is the number of POST requests issued.
	Batches int `json:"batches"`
	// FailedBatches counts batches answered with a non-200 status or lost in transport.
	FailedBatches int `json:"failed_batches"`
	// FailedPayloads counts payloads inside failed batches.
	FailedPayloads int `json:"failed_payloads"`
}
