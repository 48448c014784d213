package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Empty(t, c.DatabasePath)
	assert.NotEmpty(t, c.DataDir)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, filepath.Join(c.DataDir, "dreamias.db"), c.DBPath())
}

func TestDBPath_Explicit(t *testing.T) {
	c := Config{DatabasePath: "/tmp/x.db", DataDir: "/data"}
	assert.Equal(t, "/tmp/x.db", c.DBPath())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	setArgs(t)

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "database_path: /file.db\ndata_dir: /file-data\nlog_level: debug\n")
	setArgs(t, "-c", path, "-l", "error")
	t.Setenv("DREAMIAS_DATA_DIR", "/env-data")

	cfg := LoadConfig()

	want := &Config{DatabasePath: "/file.db", DataDir: "/env-data", LogLevel: "error"}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected *Config
	}{
		{
			name:     "json",
			file:     "cfg.json",
			content:  `{"database_path": "/a.db", "data_dir": "/a", "log_level": "info"}`,
			expected: &Config{DatabasePath: "/a.db", DataDir: "/a", LogLevel: "info"},
		},
		{
			name:     "yaml",
			file:     "cfg.yml",
			content:  "data_dir: /b\n",
			expected: &Config{DatabasePath: "/keep.db", DataDir: "/b", LogLevel: "warn"},
		},
		{
			name:     "json partial",
			file:     "cfg.json",
			content:  `{"log_level": "debug"}`,
			expected: &Config{DatabasePath: "/keep.db", DataDir: "/keep", LogLevel: "debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, "-config", writeFile(t, tt.file, tt.content))

			cfg := &Config{DatabasePath: "/keep.db", DataDir: "/keep", LogLevel: "warn"}
			require.NotPanics(t, func() { parseFile(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseFile_NoFlag_NoChanges(t *testing.T) {
	setArgs(t)

	cfg := &Config{DataDir: "/keep"}
	parseFile(cfg)
	assert.Equal(t, "/keep", cfg.DataDir)
}

func TestParseFile_Errors_Panic(t *testing.T) {
	bad := writeFile(t, "bad.json", `{ this is not valid json`)
	setArgs(t, "-config", bad)
	require.Panics(t, func() { parseFile(&Config{}) })

	badYAML := writeFile(t, "bad.yaml", "data_dir: [unterminated\n")
	setArgs(t, "-c", badYAML)
	require.Panics(t, func() { parseFile(&Config{}) })

	setArgs(t, "-c", filepath.Join(t.TempDir(), "missing.json"))
	require.Panics(t, func() { parseFile(&Config{}) })
}

func TestParseEnv(t *testing.T) {
	t.Setenv("DREAMIAS_DB_PATH", "/env.db")
	t.Setenv("DREAMIAS_LOG_LEVEL", "debug")

	cfg := &Config{DatabasePath: "/keep.db", DataDir: "/keep", LogLevel: "warn"}
	parseEnv(cfg)

	want := &Config{DatabasePath: "/env.db", DataDir: "/keep", LogLevel: "debug"}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "all flags", args: []string{"-d", "/x.db", "-data", "/x", "-l", "info"},
			expected: &Config{DatabasePath: "/x.db", DataDir: "/x", LogLevel: "info"}},
		{name: "foreign flags ignored", args: []string{"-c", "cfg.json", "-l=debug", "-z", "1"},
			expected: &Config{DatabasePath: "/keep.db", DataDir: "/keep", LogLevel: "debug"}},
		{name: "no flags", args: nil,
			expected: &Config{DatabasePath: "/keep.db", DataDir: "/keep", LogLevel: "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			cfg := &Config{DatabasePath: "/keep.db", DataDir: "/keep", LogLevel: "warn"}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
