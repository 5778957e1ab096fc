package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cropcare/internal/flagx"
	"github.com/dmitrijs2005/cropcare/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration, so JSON may give "3s" or integer nanoseconds.
// Pointer fields distinguish "absent" from "zero".
type JsonConfig struct {
	StoragePath            *string         `json:"storage_path"`
	PredictionEndpointAddr *string         `json:"prediction_endpoint_addr"`
	OnlineCheckInterval    *timex.Duration `json:"online_check_interval"`
	RequestTimeout         *timex.Duration `json:"request_timeout"`
	LogLevel               *string         `json:"log_level"`
	LogFormat              *string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag it leaves cfg unchanged. Keys missing from the file
// keep their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.PredictionEndpointAddr != nil {
		cfg.PredictionEndpointAddr = *jc.PredictionEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	return nil
}
