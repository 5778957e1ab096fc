package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/logging"
)

// Config holds runtime settings for the CropCare CLI.
//
// Fields:
//   - StoragePath: SQLite file holding accounts and the session.
//   - PredictionEndpointAddr: base URL of the crop recommendation backend.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - RequestTimeout: upper bound for a single backend request.
//   - LogLevel, LogFormat: see logging.New.
type Config struct {
	StoragePath            string
	PredictionEndpointAddr string
	OnlineCheckInterval    time.Duration
	RequestTimeout         time.Duration
	LogLevel               string
	LogFormat              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoragePath = "cropcare.db"
	c.PredictionEndpointAddr = "http://localhost:5000"
	c.OnlineCheckInterval = 10 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StoragePath) == "" {
		return errors.New("storage path is empty")
	}
	if strings.TrimSpace(c.PredictionEndpointAddr) == "" {
		return errors.New("prediction endpoint address is empty")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// LoadConfig constructs a Config from the process arguments: defaults first,
// then the JSON file (if any), then command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
