// Package config handles the global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wlin-papers/papercite/internal/meta"
	"github.com/wlin-papers/papercite/internal/process"
)

// GlobalConfig represents configuration stored in
// ~/.config/papercite/config.yml.
type GlobalConfig struct {
	AuthorFormat string `yaml:"author_format,omitempty"`
	NAuthors     int    `yaml:"n_authors,omitempty"`
	FallbackYear int    `yaml:"fallback_year,omitempty"`
	OCREngine    string `yaml:"ocr_engine,omitempty"`
	OCRDevice    string `yaml:"ocr_device,omitempty"`
	OCRServerURL string `yaml:"ocr_server_url,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "papercite"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/papercite/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns a defaulted config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg := defaults()

	path := GlobalConfigPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			globalConfigCache = cfg
			return cfg, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}
	fillDefaults(cfg)

	globalConfigCache = cfg
	return cfg, nil
}

// SaveGlobalConfig writes the config file and refreshes the cache.
func SaveGlobalConfig(cfg *GlobalConfig) error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	globalConfigCache = cfg
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

func defaults() *GlobalConfig {
	cfg := &GlobalConfig{}
	fillDefaults(cfg)
	return cfg
}

func fillDefaults(cfg *GlobalConfig) {
	if cfg.AuthorFormat == "" {
		cfg.AuthorFormat = string(meta.FirstSurname)
	}
	if cfg.NAuthors == 0 {
		cfg.NAuthors = 3
	}
	if cfg.FallbackYear == 0 {
		cfg.FallbackYear = process.DefaultFallbackYear
	}
	if cfg.OCREngine == "" {
		cfg.OCREngine = "auto"
	}
	if cfg.OCRDevice == "" {
		cfg.OCRDevice = "auto"
	}
}

// Format returns the configured author format, falling back to the
// default on an invalid value.
func (c *GlobalConfig) Format() meta.AuthorFormat {
	f, err := meta.ParseAuthorFormat(c.AuthorFormat)
	if err != nil {
		return meta.FirstSurname
	}
	return f
}
