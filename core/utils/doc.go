// Package utils provides small helpers shared across catalog-sync packages:
// typed optional values for feed fields and loose conversions for values
// decoded from untyped JSON records.
package utils
