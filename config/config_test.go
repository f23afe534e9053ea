// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tn3270demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	path := writeConfig(t, "server:\n  listen_addr: \":9999\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
	assert.Equal(t, 0, cfg.Server.HealthPort)
	assert.Equal(t, 2, cfg.Session.Model)
	assert.True(t, cfg.Session.Extended)
	assert.Equal(t, "037", cfg.Session.CodePage)
	assert.Equal(t, 30*time.Second, cfg.Session.NegotiationTimeout)
}

func TestLoadHonorsOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: ":3271"
  health_port: 8080
session:
  model: 4
  extended: false
  code_page: "1047"
  negotiation_timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":3271", cfg.Server.ListenAddr)
	assert.Equal(t, 8080, cfg.Server.HealthPort)
	assert.Equal(t, 4, cfg.Session.Model)
	assert.False(t, cfg.Session.Extended)
	assert.Equal(t, "1047", cfg.Session.CodePage)
	assert.Equal(t, 5*time.Second, cfg.Session.NegotiationTimeout)
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadReturnsErrorForMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [this is not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}
