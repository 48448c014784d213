package config

import (
	"os"
	"path/filepath"
)

const (
	appDirName = "dreamias"
	dbFileName = "dreamias.db"
)

// Config holds runtime settings for the Dream IAS CLI.
//
// Fields:
//   - DatabasePath: SQLite file with accounts and session; empty means
//     <DataDir>/dreamias.db.
//   - DataDir: directory for the database and copied avatar images.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	DatabasePath string `json:"database_path" yaml:"database_path" env:"DREAMIAS_DB_PATH"`
	DataDir      string `json:"data_dir" yaml:"data_dir" env:"DREAMIAS_DATA_DIR"`
	LogLevel     string `json:"log_level" yaml:"log_level" env:"DREAMIAS_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = ""
	c.DataDir = defaultDataDir()
	c.LogLevel = "warn"
}

// DBPath returns the database file to open.
func (c *Config) DBPath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDir, dbFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON or YAML file (if given), the environment and command-line flags.
// Later sources take precedence over earlier ones. It panics on malformed
// input.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "." + appDirName
	}
	return filepath.Join(dir, appDirName)
}
