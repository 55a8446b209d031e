// Package config loads the inventory-sync configuration.
//
// Values come from defaults declared in struct tags, a .env file and the
// environment, in increasing priority. Keys map to environment variables by
// upper-casing and replacing dots with underscores, so source.page_size is
// read from SOURCE_PAGE_SIZE.
//
// # Sections
//
//   - Server: HTTP port and API key
//   - Database: warehouse driver and connection
//   - Storage: S3/MinIO credentials and snapshot bucket
//   - Log: level and format
//   - Source: upstream GraphQL endpoint, paging and retry policy
//   - Sync: batch sizes, workers and snapshot policy
//
// The loaded value is passed to constructors; there is no package-level state.
//
//	cfg, err := config.LoadConfig(".")
package config
