package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/flagx"
)

var knownFlags = []string{"-d", "-a", "-i", "-t", "-l", "-f"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local SQLite storage file
//	-a string   base URL of the recommendation backend
//	-i int      online check interval in seconds
//	-t int      backend request timeout in seconds
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text or json
//
// Arguments are filtered with flagx.FilterArgs first, so flags owned by other
// components (such as -c) do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("cropcare", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "path to the local storage file")
	fs.StringVar(&cfg.PredictionEndpointAddr, "a", cfg.PredictionEndpointAddr, "base URL of the recommendation backend")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "backend request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text|json)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	// Durations are only overridden when given, so JSON values keep their precision.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
	return nil
}
