package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envNames {
		t.Setenv(env, "")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKLOG_SPACE_URL", "https://example.backlog.com")
	t.Setenv("BACKLOG_API_KEY", "secret")
	t.Setenv("BACKLOG_SOURCE_PROJECT_KEY", "SRC")
	t.Setenv("BACKLOG_DESTINATION_PROJECT_KEY", "DST")
	t.Setenv("MIGRATOR_REQUEST_TIMEOUT", "30s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, Config{
		SpaceURL:              "https://example.backlog.com",
		APIKey:                "secret",
		SourceProjectKey:      "SRC",
		DestinationProjectKey: "DST",
		RequestTimeout:        30 * time.Second,
	}, cfg)
}

func TestLoad_ReportsAllMissingKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKLOG_API_KEY", "secret")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "space_url (BACKLOG_SPACE_URL)")
	assert.Contains(t, err.Error(), "source_project_key (BACKLOG_SOURCE_PROJECT_KEY)")
	assert.Contains(t, err.Error(), "destination_project_key (BACKLOG_DESTINATION_PROJECT_KEY)")
	assert.NotContains(t, err.Error(), "api_key")
}

func TestLoad_ExplicitValuesOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKLOG_SOURCE_PROJECT_KEY", "FROM_ENV")

	v := viper.New()
	v.Set(KeySpaceURL, "https://example.backlog.jp")
	v.Set(KeyAPIKey, "secret")
	v.Set(KeySourceProjectKey, "FROM_FLAG")
	v.Set(KeyDestinationProjectKey, "DST")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "FROM_FLAG", cfg.SourceProjectKey)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Empty(t, cfg.JournalPath)
}

func TestLoad_FromConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
space_url: https://example.backlog.com
api_key: secret
source_project_key: SRC
destination_project_key: DST
journal_path: /tmp/journal.db
`), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "DST", cfg.DestinationProjectKey)
	assert.Equal(t, "/tmp/journal.db", cfg.JournalPath)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	v := viper.New()
	v.Set(KeyRequestTimeout, "soon")

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_timeout")
}
