package config

import (
	"flag"
	"os"

	"github.com/brocat-app/brocat/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend API (default from Config)
//	-m string   base URL for media assets (default from Config)
//	-d string   SQLite DSN of the local catalog cache (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.MediaBaseURL, "m", cfg.MediaBaseURL, "base URL for media assets")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "SQLite DSN of the local catalog cache")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
