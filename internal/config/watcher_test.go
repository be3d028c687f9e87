// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsOnChange(t *testing.T) {
	t.Setenv("AHAM_LLM_MODEL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nmodel = \"first\"\n"), 0o600))

	loaded := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config) { loaded <- cfg })
	require.NoError(t, err)
	defer w.Close()

	// Writes to unrelated files in the same directory must not trigger a
	// reload of the config.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nmodel = \"second\"\n"), 0o600))

	select {
	case cfg := <-loaded:
		assert.Equal(t, "second", cfg.LLM.Model)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatchSkipsInvalidIntermediateState(t *testing.T) {
	t.Setenv("AHAM_LLM_MODEL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nmodel = \"first\"\n"), 0o600))

	loaded := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config) { loaded <- cfg })
	require.NoError(t, err)
	defer w.Close()

	// A half-written file is logged and skipped, then the next valid
	// write is delivered.
	require.NoError(t, os.WriteFile(path, []byte("[llm\nmodel ="), 0o600))
	time.Sleep(2 * watchDebounce)
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nmodel = \"repaired\"\n"), 0o600))

	select {
	case cfg := <-loaded:
		assert.Equal(t, "repaired", cfg.LLM.Model)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered after repair")
	}
}
