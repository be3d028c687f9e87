// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.LLM.Model != "openrouter/auto" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.Cache.MaxEntries != 100 || cfg.Cache.TTLSecs != 300 {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[llm]
model = "anthropic/claude-3-haiku"
api_key = "sk-test"

[cache]
max_entries = 10
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.LLM.Model != "anthropic/claude-3-haiku" || cfg.LLM.APIKey != "sk-test" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Cache.MaxEntries != 10 {
		t.Errorf("max_entries = %d", cfg.Cache.MaxEntries)
	}
	// Untouched sections keep defaults.
	if cfg.Search.WikipediaURL != "https://en.wikipedia.org" {
		t.Errorf("wikipedia_url = %q", cfg.Search.WikipediaURL)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv("AHAM_LLM_API_KEY", "sk-env")
	t.Setenv("AHAM_OFFLINE", "true")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.LLM.APIKey != "sk-env" {
		t.Errorf("api_key = %q", cfg.LLM.APIKey)
	}
	if !cfg.Offline.ForceOffline {
		t.Error("AHAM_OFFLINE not applied")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.LLM.BaseURL = "ftp://nope"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-http URL")
	}

	cfg = Default()
	cfg.Cache.MaxEntries = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative max_entries")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.LLM.Model = "openai/gpt-4o"
	cfg.Export.OutputDir = "/tmp/exports"
	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.LLM.Model != "openai/gpt-4o" || loaded.Export.OutputDir != "/tmp/exports" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
