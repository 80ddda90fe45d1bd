package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	v, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, v.GetString("server.host"))
}

func TestLoadReadsYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\nlog:\n  level: debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, v.GetInt("server.port"))
	assert.Equal(t, "warn", v.GetString("log.level"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CHATTER_TEST_VALUE", "x")
	assert.Equal(t, "x", GetEnv("CHATTER_TEST_VALUE", "y"))
	assert.Equal(t, "y", GetEnv("CHATTER_TEST_UNSET", "y"))
}
