// Package config provides configuration management for catalog-sync.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field as `default` struct
// tags and are registered with Viper through reflection, so every key can be
// overridden by its upper-cased, underscore-joined environment name.
//
// # Configuration Structure
//
//   - Feed: ICML feed URL and timeout
//   - Inventory: API base URL, credentials (INVENTORY_LOGIN, INVENTORY_PASSWORD),
//     paging, batching, concurrency and payload references
//   - Server: HTTP trigger port and API key
//   - Storage: optional S3/MinIO report archive
//   - Log: level, format and log file
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Inventory.BaseURL)
package config
