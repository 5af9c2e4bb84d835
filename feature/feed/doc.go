// Package feed reads the ICML product feed.
//
// The feed is an XML document listing categories and offers. Reader fetches
// it over HTTP and Parse turns it into a Catalog keyed the way reconciliation
// needs it: offers by external code (the `xmlId` element), categories by id.
//
// Optional offer children (url, picture, xmlId, article, description,
// categoryId, vendor) become absent utils.Optional values when missing.
// Required fields (offer id and productId attributes, price and name
// elements) abort the whole parse with a *ParseError, as does a price that is
// not a decimal number.
//
// Feeds declared in a legacy charset such as windows-1251 are decoded through
// golang.org/x/text before parsing.
package feed
