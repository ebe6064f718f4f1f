package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "elec")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "elecmate")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "4242", cfg.HTTPPort)
	assert.Equal(t, 30, cfg.ReviewWindowDays)
	assert.Equal(t, 2*time.Hour, cfg.DraftTTL)
	assert.False(t, cfg.ArchiveEnabled)
	assert.Equal(t, "host=localhost user=elec password=secret dbname=elecmate port=5432 sslmode=disable", cfg.DSN())
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ArchiveNeedsBucket(t *testing.T) {
	setRequired(t)
	t.Setenv("ARCHIVE_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ARCHIVE_ENABLED")
}

func TestValidate_NegativeWindow(t *testing.T) {
	cfg := Config{ReviewWindowDays: -1}
	assert.Error(t, cfg.Validate())
}
