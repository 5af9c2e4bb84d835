package feed

import (
	"fmt"

	"catalog-sync/core/utils"

	"github.com/shopspring/decimal"
)

// Category is a feed category.
type Category struct {
	ID       string                         `json:"id"`
	Name     string                         `json:"name"`
	ParentID utils.Optional[string]         `json:"parent_id"`
	// Remote is the inventory folder meta once the category has been linked.
	Remote   utils.Optional[map[string]any] `json:"remote"`
}

// Offer is a feed product offer.
type Offer struct {
	ID        string                 `json:"id"`
	ProductID string                 `json:"product_id"`
	URL       utils.Optional[string] `json:"url"`
	// Price is in major currency units.
	Price      decimal.Decimal        `json:"price"`
	CategoryID utils.Optional[string] `json:"category_id"`
	Picture    utils.Optional[string] `json:"picture"`
	Name       string                 `json:"name"`
	// ExternalCode is the xmlId element and the join key against the inventory.
	ExternalCode string                 `json:"external_code"`
	Article      utils.Optional[string] `json:"article"`
	Description  utils.Optional[string] `json:"description"`
	Vendor       utils.Optional[string] `json:"vendor"`
}

// Catalog is the parsed feed.
type Catalog struct {
	// Offers is keyed by external code.
	Offers map[string]Offer
	// Categories is keyed by category id.
	Categories map[string]Category
	// Skipped lists ids of offers without an external code.
	Skipped []string
	// Duplicates counts offers whose external code was already seen; the later one wins.
	Duplicates int
}

// ParseError reports a feed record that lacks a required field or holds an invalid value.
type ParseError struct {
	Element string
	ID      string
	Field   string
	Err     error
}

func (e *ParseError) Error() string {
	id := e.ID
	if id == "" {
		id = "?"
	}
	if e.Err != nil {
		return fmt.Sprintf("feed: %s %s: invalid %s: %v", e.Element, id, e.Field, e.Err)
	}
	return fmt.Sprintf("feed: %s %s: missing required field %s", e.Element, id, e.Field)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
