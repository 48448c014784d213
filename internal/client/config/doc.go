// Package config loads runtime configuration for the Dream IAS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Environment variables DREAMIAS_DB_PATH, DREAMIAS_DATA_DIR and
//     DREAMIAS_LOG_LEVEL.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-c, -config string   config file (.json, .yaml or .yml)
//	-d string            database file
//	-data string         data directory
//	-l string            log level
//
// # File schema
//
//	{
//	  "database_path": "/home/me/.config/dreamias/dreamias.db",
//	  "data_dir": "/home/me/.config/dreamias",
//	  "log_level": "info"
//	}
//
// The same keys are used in YAML files.
package config
