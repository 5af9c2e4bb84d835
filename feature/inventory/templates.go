package inventory

import "strings"

const mediaTypeJSON = "application/json"

// Templates builds the fixed references embedded in product payloads.
type Templates struct {
	cfg     Config
	baseURL string
}

// NewTemplates creates payload templates from the client configuration.
func NewTemplates(cfg Config) *Templates {
	return &Templates{cfg: cfg, baseURL: strings.TrimRight(cfg.BaseURL, "/")}
}

// VAT returns the tax rate applied to created products.
func (t *Templates) VAT() int {
	return t.cfg.VAT
}

// SalePrice returns a sale price entry for value in minor units.
func (t *Templates) SalePrice(value int64) map[string]any {
	return map[string]any{
		"value": value,
		"currency": map[string]any{
			"meta": Meta{
				"href":         t.baseURL + "/entity/currency/" + t.cfg.CurrencyID,
				"metadataHref": t.baseURL + "/entity/currency/metadata",
				"type":         "currency",
				"mediaType":    mediaTypeJSON,
			},
		},
		"priceType": map[string]any{
			"meta": Meta{
				"href":      t.baseURL + "/context/companysettings/pricetype/" + t.cfg.PriceTypeID,
				"type":      "pricetype",
				"mediaType": mediaTypeJSON,
			},
			"id":           t.cfg.PriceTypeID,
			"name":         t.cfg.PriceTypeName,
			"externalCode": t.cfg.PriceTypeExternalCode,
		},
	}
}

// URLAttribute returns the custom attribute carrying the feed URL.
func (t *Templates) URLAttribute(value any) map[string]any {
	return t.attribute(t.cfg.URLAttributeID, t.cfg.URLAttributeName, value)
}

// VendorAttribute returns the custom attribute carrying the vendor name.
func (t *Templates) VendorAttribute(value any) map[string]any {
	return t.attribute(t.cfg.VendorAttributeID, t.cfg.VendorAttributeName, value)
}

func (t *Templates) attribute(id, name string, value any) map[string]any {
	return map[string]any{
		"meta": Meta{
			"href":      t.baseURL + "/entity/product/metadata/attributes/" + id,
			"type":      "attributemetadata",
			"mediaType": mediaTypeJSON,
		},
		"id":    id,
		"name":  name,
		"type":  "string",
		"value": value,
	}
}
