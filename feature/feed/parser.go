package feed

import (
	"fmt"
	"io"
	"strings"

	"catalog-sync/core/utils"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/htmlindex"
)

// Parse reads an ICML document into a Catalog.
func Parse(r io.Reader) (*Catalog, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse feed XML: %w", err)
	}

	catalog := &Catalog{
		Offers:     make(map[string]Offer),
		Categories: make(map[string]Category),
	}

	for _, el := range doc.FindElements("//category") {
		category, err := parseCategory(el)
		if err != nil {
			return nil, err
		}
		catalog.Categories[category.ID] = category
	}

	for _, el := range doc.FindElements("//offer") {
		offer, err := parseOffer(el)
		if err != nil {
			return nil, err
		}
		if offer.ExternalCode == "" {
			catalog.Skipped = append(catalog.Skipped, offer.ID)
			continue
		}
		if _, seen := catalog.Offers[offer.ExternalCode]; seen {
			catalog.Duplicates++
		}
		catalog.Offers[offer.ExternalCode] = offer
	}

	return catalog, nil
}

func parseCategory(el *etree.Element) (Category, error) {
	id := attr(el, "id")
	if id == "" {
		return Category{}, &ParseError{Element: "category", Field: "id"}
	}
	return Category{
		ID:       id,
		Name:     strings.TrimSpace(el.Text()),
		ParentID: optionalAttr(el, "parentId"),
	}, nil
}

func parseOffer(el *etree.Element) (Offer, error) {
	id := attr(el, "id")
	if id == "" {
		return Offer{}, &ParseError{Element: "offer", Field: "id"}
	}
	productID := attr(el, "productId")
	if productID == "" {
		return Offer{}, &ParseError{Element: "offer", ID: id, Field: "productId"}
	}

	rawPrice, ok := optionalText(el, "price").Get()
	if !ok {
		return Offer{}, &ParseError{Element: "offer", ID: id, Field: "price"}
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return Offer{}, &ParseError{Element: "offer", ID: id, Field: "price", Err: err}
	}

	name, ok := optionalText(el, "name").Get()
	if !ok {
		return Offer{}, &ParseError{Element: "offer", ID: id, Field: "name"}
	}

	return Offer{
		ID:           id,
		ProductID:    productID,
		URL:          optionalText(el, "url"),
		Price:        price,
		CategoryID:   optionalText(el, "categoryId"),
		Picture:      optionalText(el, "picture"),
		Name:         name,
		ExternalCode: optionalText(el, "xmlId").OrElse(""),
		Article:      optionalText(el, "article"),
		Description:  optionalText(el, "description"),
		Vendor:       optionalText(el, "vendor"),
	}, nil
}

func attr(el *etree.Element, key string) string {
	return strings.TrimSpace(el.SelectAttrValue(key, ""))
}

func optionalAttr(el *etree.Element, key string) utils.Optional[string] {
	if v := attr(el, key); v != "" {
		return utils.Some(v)
	}
	return utils.None[string]()
}

// optionalText returns the trimmed text of the first child named tag.
// Missing and empty children are both absent.
func optionalText(el *etree.Element, tag string) utils.Optional[string] {
	child := el.SelectElement(tag)
	if child == nil {
		return utils.None[string]()
	}
	if v := strings.TrimSpace(child.Text()); v != "" {
		return utils.Some(v)
	}
	return utils.None[string]()
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported feed charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
