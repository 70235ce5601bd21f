package config

import (
	"flag"
	"os"
	"time"

	"github.com/accion2025/buencuidar/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   storage endpoint URL (default from Config)
//	-b string   upload bucket (default from Config)
//	-d string   postgres DSN (default from Config)
//	-f string   local cache file path (default from Config)
//	-i int      board refresh interval in seconds (default from Config)
//	-m          constrained device mode
//	-v          verbose logging
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-b", "-d", "-f", "-i", "-m", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageEndpoint, "s", cfg.StorageEndpoint, "storage endpoint URL")
	fs.StringVar(&cfg.StorageBucket, "b", cfg.StorageBucket, "upload bucket")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.CachePath, "f", cfg.CachePath, "local cache file path")
	refreshInterval := fs.Int("i", int(cfg.BoardRefreshInterval.Seconds()), "board refresh interval (in seconds)")
	fs.BoolVar(&cfg.ConstrainedDevice, "m", cfg.ConstrainedDevice, "constrained device mode")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.BoardRefreshInterval = time.Duration(*refreshInterval) * time.Second
}
