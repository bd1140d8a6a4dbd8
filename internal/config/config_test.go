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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
app:
  env: prod
  timezone: Europe/Moscow
telegram:
  token: "token"
  poll_timeout_sec: 30
http:
  addr: ":9090"
postgres:
  dsn: "postgres://u:p@localhost:5432/db"
metrics:
  enabled: true
invites:
  code_length: 8
  code_prefix: "XX_"
  max_attempts: 3
  attempt_reset: 1m
  block_time: 30m
  attempts_ttl: 2h
cache:
  ttl: 5m
owners:
  - user_id: 111
    first_name: "Имя"
    username: "owner"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, 30, cfg.Telegram.PollTimeoutSec)
	assert.Equal(t, 8, cfg.Invites.CodeLength)
	assert.Equal(t, "XX_", cfg.Invites.CodePrefix)
	assert.Equal(t, 3, cfg.Invites.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Invites.AttemptReset)
	assert.Equal(t, 30*time.Minute, cfg.Invites.BlockTime)
	assert.Equal(t, 2*time.Hour, cfg.Invites.AttemptsTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.Len(t, cfg.Owners, 1)
	assert.Equal(t, int64(111), cfg.Owners[0].UserID)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
telegram:
  token: "token"
postgres:
  dsn: "postgres://u:p@localhost:5432/db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Invites.CodeLength)
	assert.Equal(t, "AD_", cfg.Invites.CodePrefix)
	assert.Equal(t, 5, cfg.Invites.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Invites.AttemptReset)
	assert.Equal(t, time.Hour, cfg.Invites.BlockTime)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 60, cfg.Telegram.PollTimeoutSec)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
