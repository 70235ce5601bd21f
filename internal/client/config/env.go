package config

import "os"

// parseEnv overlays credentials and connection strings from the environment.
// These are the values operators prefer to keep out of config files and
// shell history. Runs between the JSON and flag layers.
//
// Recognized variables:
//
//	BUENCUIDAR_STORAGE_ACCESS_KEY
//	BUENCUIDAR_STORAGE_SECRET_KEY
//	BUENCUIDAR_DATABASE_DSN
func parseEnv(cfg *Config) {
	if v := os.Getenv("BUENCUIDAR_STORAGE_ACCESS_KEY"); v != "" {
		cfg.StorageAccessKey = v
	}
	if v := os.Getenv("BUENCUIDAR_STORAGE_SECRET_KEY"); v != "" {
		cfg.StorageSecretKey = v
	}
	if v := os.Getenv("BUENCUIDAR_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
}
