// Package config loads runtime configuration for the CropCare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local SQLite storage file
//	-a string   base URL of the recommendation backend
//	-i int      online status check interval (seconds)
//	-t int      backend request timeout (seconds)
//	-l string   log level
//	-f string   log format
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "storage_path": "cropcare.db",
//	  "prediction_endpoint_addr": "http://localhost:5000",
//	  "online_check_interval": "10s",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
