package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Simulator.SentDelay)
	assert.Equal(t, 3*time.Second, cfg.Simulator.ReplyDelay)
	assert.Equal(t, 20, cfg.Conversation.HistorySize)
	assert.Equal(t, 15, cfg.Directory.Chats)
	assert.Equal(t, 25, cfg.Directory.Contacts)
	assert.Equal(t, 12, cfg.Directory.Calls)
	assert.Equal(t, 4, cfg.OTP.CodeLength)
	assert.Equal(t, time.Minute, cfg.OTP.ResendAfter)
	assert.Equal(t, 1500*time.Millisecond, cfg.OTP.VerifyDelay)
	assert.Equal(t, 10*time.Minute, cfg.OTP.Expiry)
	assert.Equal(t, 1500*time.Millisecond, cfg.Auth.ProfileDelay)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "sqlite", cfg.Storage.Database.Driver)
	assert.Equal(t, "ulid", cfg.IDs.Type)
	assert.Equal(t, 30*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, int64(4096), cfg.WebSocket.MaxMessageSize)
	assert.Equal(t, "chatter", cfg.Log.ServiceName)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulator:
  sent_delay: 250ms
  reply_delay: 2s
conversation:
  history_size: 5
storage:
  driver: redis
  redis:
    prefix: test
ids:
  type: snowflake
  snowflake:
    machine_id: 3
`), 0o644))

	t.Setenv("PORT", "9999")
	t.Setenv("REDIS_ADDRESS", "redis:6380")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.SentDelay)
	assert.Equal(t, 2*time.Second, cfg.Simulator.ReplyDelay)
	assert.Equal(t, 5, cfg.Conversation.HistorySize)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "redis:6380", cfg.Storage.Redis.Address)
	assert.Equal(t, "test", cfg.Storage.Redis.Prefix)
	assert.Equal(t, "snowflake", cfg.IDs.Type)
	assert.Equal(t, int64(3), cfg.IDs.Snowflake.MachineID)
}
