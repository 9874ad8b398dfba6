package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOARD_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.ListingPageSize)
	assert.Equal(t, 1800, cfg.SessionTTL)
	assert.Equal(t, 3600, cfg.CSRFTokenTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxAttachmentBytes)
	assert.Equal(t, "", cfg.TemplateDir)
	assert.Equal(t, "default", cfg.Source("listing_page_size"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARD_CONFIG_PATH", dir)

	content := []byte("listing_page_size: 25\nsession_ttl: 7200\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.ListingPageSize)
	assert.Equal(t, "file", cfg.Source("listing_page_size"))
	assert.Equal(t, 7200, cfg.SessionTTL)
	// untouched values keep their defaults
	assert.Equal(t, 3600, cfg.CSRFTokenTTL)
	assert.Equal(t, "default", cfg.Source("csrf_token_ttl"))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARD_CONFIG_PATH", dir)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ConfigFileName),
		[]byte("listing_page_size: 25\n"),
		0o644,
	))
	t.Setenv("BOARD_LISTING_PAGE_SIZE", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.ListingPageSize)
	assert.Equal(t, "environment", cfg.Source("listing_page_size"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARD_CONFIG_PATH", dir)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ConfigFileName),
		[]byte("listing_page_size: [not a number"),
		0o644,
	))

	_, err := Load()
	assert.Error(t, err)
}

func TestLifetimes(t *testing.T) {
	cfg := &BoardConfig{SessionTTL: 1800, CSRFTokenTTL: 60}

	assert.Equal(t, 30*time.Minute, cfg.SessionLifetime())
	assert.Equal(t, time.Minute, cfg.CSRFLifetime())
}

func TestValidate(t *testing.T) {
	valid := newDefault()
	assert.NoError(t, valid.Validate())

	invalid := newDefault()
	invalid.ListingPageSize = 0
	assert.Error(t, invalid.Validate())

	invalid = newDefault()
	invalid.MaxAttachmentBytes = -1
	assert.Error(t, invalid.Validate())
}

func TestAttributes(t *testing.T) {
	t.Setenv("BOARD_CONFIG_PATH", t.TempDir())
	t.Setenv("BOARD_SESSION_TTL", "900")

	cfg, err := Load()
	require.NoError(t, err)

	attributes := cfg.Attributes()
	byName := map[string]Attribute{}
	for _, a := range attributes {
		byName[a.Name] = a
	}

	assert.Len(t, attributes, 5)
	assert.Equal(t, "900", byName["session_ttl"].Value)
	assert.Equal(t, "environment", byName["session_ttl"].Source)
	assert.Equal(t, "default", byName["listing_page_size"].Source)
}
