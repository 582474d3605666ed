// Package config loads sparkmig configuration from .sparkmig/config.yaml.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// WorkspaceDir is the per-repo directory holding config and databases.
const WorkspaceDir = ".sparkmig"

// Config is the complete sparkmig configuration.
type Config struct {
	// IndexPath is the sqlite migration index database.
	IndexPath string `mapstructure:"indexPath"`

	// Mapping is an optional YAML mapping file used directly when no
	// index database has been imported.
	Mapping string `mapstructure:"mapping"`

	Session SessionConfig `mapstructure:"session"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SessionConfig carries the default catalog and schema of the analyzed
// workloads.
type SessionConfig struct {
	DefaultCatalog string `mapstructure:"defaultCatalog"`
	DefaultSchema  string `mapstructure:"defaultSchema"`
}

// ScanConfig controls file discovery.
type ScanConfig struct {
	// Exclude lists directory or file basenames skipped during discovery.
	Exclude []string `mapstructure:"exclude"`
}

// CacheConfig controls the advisory cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration rooted at repoRoot.
func DefaultConfig(repoRoot string) *Config {
	return &Config{
		IndexPath: filepath.Join(repoRoot, WorkspaceDir, "index.db"),
		Session:   SessionConfig{DefaultCatalog: "hive_metastore"},
		Scan: ScanConfig{
			Exclude: []string{".git", ".sparkmig", "venv", ".venv", "__pycache__", "node_modules"},
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(repoRoot, WorkspaceDir, "cache.db"),
		},
		Logging: LoggingConfig{Format: "human", Level: "info"},
	}
}

// Load reads .sparkmig/config.yaml under repoRoot. A missing config file
// yields the defaults.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(repoRoot, WorkspaceDir))

	defaults := DefaultConfig(repoRoot)
	v.SetDefault("indexPath", defaults.IndexPath)
	v.SetDefault("session.defaultCatalog", defaults.Session.DefaultCatalog)
	v.SetDefault("scan.exclude", defaults.Scan.Exclude)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.path", defaults.Cache.Path)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
