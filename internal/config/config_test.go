package config_test

import (
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "workout_tracker", cfg.Database.Name)
	assert.Equal(t, "workout-tracker-media", cfg.S3.BucketName)
	assert.Equal(t, 15*time.Minute, cfg.S3.PresignExpiry)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigValidate(t *testing.T) {
	valid, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, valid.Validate())

	broken := valid
	broken.Database.URI = ""
	assert.Error(t, broken.Validate())

	broken = valid
	broken.Logging.Level = "loud"
	assert.Error(t, broken.Validate())

	broken = valid
	broken.S3.PresignExpiry = time.Second
	assert.Error(t, broken.Validate(), "sub-minute presign expiry is rejected")
}
