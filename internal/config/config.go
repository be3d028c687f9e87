// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and saves the assistant configuration from
// ~/.aham/config.toml, with AHAM_* environment variable overrides and
// validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ahamlabs/aham/internal/util"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config is the full assistant configuration.
type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Search  SearchConfig  `toml:"search"`
	Cache   CacheConfig   `toml:"cache"`
	Render  RenderConfig  `toml:"render"`
	Export  ExportConfig  `toml:"export"`
	Offline OfflineConfig `toml:"offline"`
}

// LLMConfig configures the model backend.
type LLMConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	Model        string `toml:"model"`
	TimeoutSecs  int    `toml:"timeout_secs"`
	MaxRetries   int    `toml:"max_retries"`
	HistoryLimit int    `toml:"history_limit"`
}

// SearchConfig configures the search clients.
type SearchConfig struct {
	WikipediaURL      string  `toml:"wikipedia_url"`
	DuckDuckGoURL     string  `toml:"duckduckgo_url"`
	TimeoutSecs       int     `toml:"timeout_secs"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// CacheConfig bounds the search cache.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
	TTLSecs    int `toml:"ttl_secs"`
}

// RenderConfig points at the diagram render service.
type RenderConfig struct {
	EngineURL   string `toml:"engine_url"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// ExportConfig configures artifact exports.
type ExportConfig struct {
	OutputDir string `toml:"output_dir"`
}

// OfflineConfig controls the offline failover.
type OfflineConfig struct {
	// ForceOffline starts the assistant offline regardless of backend
	// availability.
	ForceOffline bool `toml:"force_offline"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:      "https://openrouter.ai/api/v1",
			Model:        "openrouter/auto",
			TimeoutSecs:  60,
			MaxRetries:   3,
			HistoryLimit: 20,
		},
		Search: SearchConfig{
			WikipediaURL:      "https://en.wikipedia.org",
			DuckDuckGoURL:     "https://api.duckduckgo.com",
			TimeoutSecs:       10,
			RequestsPerSecond: 2,
		},
		Cache: CacheConfig{
			MaxEntries: 100,
			TTLSecs:    300,
		},
		Render: RenderConfig{
			EngineURL:   "http://127.0.0.1:8411",
			TimeoutSecs: 10,
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
	}
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Path returns the config file location, ~/.aham/config.toml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".aham", "config.toml"), nil
}

// Load reads the config file, applies environment overrides, and
// validates. A missing file is not an error; defaults are used.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit file location.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides lets environment variables win over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AHAM_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("AHAM_LLM_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("AHAM_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("AHAM_RENDER_URL"); v != "" {
		c.Render.EngineURL = v
	}
	if v := os.Getenv("AHAM_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("AHAM_OFFLINE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Offline.ForceOffline = b
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks value ranges and URL shapes.
func (c *Config) Validate() error {
	var problems []string

	for name, u := range map[string]string{
		"llm.base_url":          c.LLM.BaseURL,
		"search.wikipedia_url":  c.Search.WikipediaURL,
		"search.duckduckgo_url": c.Search.DuckDuckGoURL,
		"render.engine_url":     c.Render.EngineURL,
	} {
		if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			problems = append(problems, fmt.Sprintf("%s must be an http(s) URL, got %q", name, u))
		}
	}

	if c.Cache.MaxEntries < 0 {
		problems = append(problems, "cache.max_entries must not be negative")
	}
	if c.Cache.TTLSecs < 0 {
		problems = append(problems, "cache.ttl_secs must not be negative")
	}
	if c.LLM.MaxRetries < 0 {
		problems = append(problems, "llm.max_retries must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the config to the default location, creating ~/.aham if
// needed. The file is written atomically with owner-only permissions
// since it can hold an API key.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath is Save with an explicit file location.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
