package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"coverfinder/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Catalog contains configuration for the sharded GameDB catalog.
type Catalog struct {
	BaseURL        string `toml:"base_url"`
	ImageBaseURL   string `toml:"image_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxResults     int    `toml:"max_results"`
}

// Storefront contains configuration for the Steam store search and asset CDN.
type Storefront struct {
	BaseURL        string `toml:"base_url"`
	CDNBaseURL     string `toml:"cdn_base_url"`
	Language       string `toml:"language"`
	Country        string `toml:"country"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxResults     int    `toml:"max_results"`
	// SingleLimit is how many search hits single-cover resolution inspects.
	SingleLimit  int  `toml:"single_limit"`
	ProbeLibrary bool `toml:"probe_library"`
}

// Cache contains configuration for the catalog cache.
type Cache struct {
	// MaxEntries bounds each in-memory map with LRU eviction. 0 means unbounded.
	MaxEntries int    `toml:"max_entries"`
	Persist    bool   `toml:"persist"`
	Path       string `toml:"path"`
}

// Engine contains configuration for the aggregation layer.
type Engine struct {
	BatchConcurrency int `toml:"batch_concurrency"`
}

// Server contains configuration for the HTTP API.
type Server struct {
	Bind string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for coverfinder.
//
// Configuration sections by subsystem:
//   - Catalog: GameDB bucket/game endpoints and IGDB image host
//   - Storefront: Steam store search, app details and CDN assets
//   - Cache: in-memory bound and optional on-disk catalog store
//   - Engine: batch concurrency
//   - Server: HTTP API bind address
//   - Logging: log format, level and optional file
type Config struct {
	Catalog    Catalog    `toml:"catalog"`
	Storefront Storefront `toml:"storefront"`
	Cache      Cache      `toml:"cache"`
	Engine     Engine     `toml:"engine"`
	Server     Server     `toml:"server"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the first config file found (an explicit path, then the user
// config directory, then ./coverfinder.toml) over Default(), normalizes it and
// validates it. It also reports the path it settled on and whether that file
// exists; a missing file is not an error.
func Load(path string) (*Config, string, bool, error) {
	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		switch _, err := os.Stat(expanded); {
		case err == nil:
			return expanded, true, nil
		case errors.Is(err, fs.ErrNotExist):
			return expanded, false, nil
		default:
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}

	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := expandPath(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

// CatalogTimeout returns the request timeout for catalog calls.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// StorefrontTimeout returns the request timeout for storefront calls.
func (c *Config) StorefrontTimeout() time.Duration {
	return time.Duration(c.Storefront.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath resolves ~ and relative paths to an absolute path. Empty input
// stays empty.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the annotated sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
