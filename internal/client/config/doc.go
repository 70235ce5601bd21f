// Package config loads runtime configuration for the BuenCuidar client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables for credentials (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the object storage endpoint
//	-b string   upload bucket name
//	-d string   postgres DSN of the hosted database
//	-f string   path of the local cache database file
//	-i int      job board refresh interval (seconds)
//	-m          constrained device mode (downscale images before upload)
//	-v          verbose logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "1m" or integer nanoseconds. The storage credentials have no
// flag equivalents; they come from the JSON file or the
// BUENCUIDAR_STORAGE_ACCESS_KEY / BUENCUIDAR_STORAGE_SECRET_KEY /
// BUENCUIDAR_DATABASE_DSN environment variables:
//
//	{
//	  "storage_endpoint": "http://127.0.0.1:9000",
//	  "storage_region": "us-east-1",
//	  "storage_bucket": "buencuidar-uploads",
//	  "storage_access_key": "...",
//	  "storage_secret_key": "...",
//	  "database_dsn": "postgres://...",
//	  "cache_path": "buencuidar.db",
//	  "board_refresh_interval": "1m"
//	}
package config
