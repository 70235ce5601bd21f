package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/accion2025/buencuidar/internal/flagx"
	"github.com/accion2025/buencuidar/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "1m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	StorageEndpoint      string         `json:"storage_endpoint"`
	StorageRegion        string         `json:"storage_region"`
	StorageBucket        string         `json:"storage_bucket"`
	StorageAccessKey     string         `json:"storage_access_key"`
	StorageSecretKey     string         `json:"storage_secret_key"`
	DatabaseDSN          string         `json:"database_dsn"`
	CachePath            string         `json:"cache_path"`
	BoardRefreshInterval timex.Duration `json:"board_refresh_interval"`
	ConstrainedDevice    bool           `json:"constrained_device"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JSONConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; empty strings and a zero
//     interval leave the existing value alone.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StorageEndpoint != "" {
		cfg.StorageEndpoint = jc.StorageEndpoint
	}
	if jc.StorageRegion != "" {
		cfg.StorageRegion = jc.StorageRegion
	}
	if jc.StorageBucket != "" {
		cfg.StorageBucket = jc.StorageBucket
	}
	if jc.StorageAccessKey != "" {
		cfg.StorageAccessKey = jc.StorageAccessKey
	}
	if jc.StorageSecretKey != "" {
		cfg.StorageSecretKey = jc.StorageSecretKey
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.CachePath != "" {
		cfg.CachePath = jc.CachePath
	}
	if jc.BoardRefreshInterval.Duration > 0 {
		cfg.BoardRefreshInterval = time.Duration(jc.BoardRefreshInterval.Duration)
	}
	if jc.ConstrainedDevice {
		cfg.ConstrainedDevice = true
	}
}
