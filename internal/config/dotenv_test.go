package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/apiecho/pkg/constants"
)

func TestLoadDotEnvFeedsLoader(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("APIECHO_API_TIER=2\nPORT=7001\n"), 0o600))

	// Registered so the variables are restored after godotenv sets them.
	t.Setenv("APIECHO_API_TIER", "")
	t.Setenv("PORT", "7100")
	require.NoError(t, os.Unsetenv("APIECHO_API_TIER"))

	require.NoError(t, LoadDotEnv(file))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, constants.TierInstrumented, cfg.API.ServiceTier())
	assert.Equal(t, 7100, cfg.Server.Port, "existing environment wins over .env")
}

func TestLoadDotEnvSkipsMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnvRejectsMalformedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("BAD-KEY=1\n"), 0o600))

	assert.Error(t, LoadDotEnv(file))
}
