package inventory

import "errors"

// ErrMissingCredentials is returned when login or password is not configured.
var ErrMissingCredentials = errors.New("inventory credentials are not configured (INVENTORY_LOGIN, INVENTORY_PASSWORD)")

// Config holds configuration for the inventory API client.
type Config struct {
	// BaseURL is the root of the REST API, without a trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://online.moysklad.ru/api/remap/1.2"`
	// Login is the Basic auth user.
	Login string `mapstructure:"login" default:""`
	// Password is the Basic auth password.
	Password string `mapstructure:"password" default:""`
	// PageSize is the number of rows requested per page.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// BatchSize is the number of payloads sent per push request.
	BatchSize int `mapstructure:"batch_size" default:"1000"`
	// Concurrency caps in-flight requests across the whole run.
	Concurrency int `mapstructure:"concurrency" default:"5"`
	// TimeoutSeconds bounds fetch and category creation requests.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PushTimeoutSeconds bounds each batch push request.
	PushTimeoutSeconds int `mapstructure:"push_timeout_seconds" default:"600"`

	// VAT is the tax rate set on created products.
	VAT int `mapstructure:"vat" default:"20"`
	// CurrencyID references the sale price currency.
	CurrencyID string `mapstructure:"currency_id" default:"c954c2a9-326f-11ec-0a80-07fe000fd4e3"`
	// PriceTypeID references the sale price type.
	PriceTypeID string `mapstructure:"price_type_id" default:"c9561b60-326f-11ec-0a80-07fe000fd4e4"`
	// PriceTypeName is the display name of the sale price type.
	PriceTypeName string `mapstructure:"price_type_name" default:"Цена продажи"`
	// PriceTypeExternalCode is the external code of the sale price type.
	PriceTypeExternalCode string `mapstructure:"price_type_external_code" default:"cbcf493b-55bc-11d9-848a-00112f43529a"`
	// URLAttributeID is the custom attribute holding the feed product URL.
	URLAttributeID string `mapstructure:"url_attribute_id" default:"38d405ce-4bb7-11ed-0a80-04e0000e820c"`
	// URLAttributeName is the display name of the URL attribute.
	URLAttributeName string `mapstructure:"url_attribute_name" default:"Ссылка на сайте"`
	// VendorAttributeID is the custom attribute holding the vendor name.
	VendorAttributeID string `mapstructure:"vendor_attribute_id" default:"780f347c-4bb7-11ed-0a80-06b3000e0ae7"`
	// VendorAttributeName is the display name of the vendor attribute.
	VendorAttributeName string `mapstructure:"vendor_attribute_name" default:"Производитель"`
}

// Validate checks that credentials are present.
func (c Config) Validate() error {
	if c.Login == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}
