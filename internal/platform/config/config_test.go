package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("SUPSTONAD_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("LOCK_TTL", "10s")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Second, cfg.Lock.TTL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supstonad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  dsn: postgres://localhost/supstonad
lock:
  ttl: 45s
revurdering:
  skal_utsette_tilbakekreving: true
`), 0o600))
	t.Setenv("SUPSTONAD_CONFIG_FILE", path)
	t.Setenv("SUPSTONAD_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/supstonad", cfg.Database.DSN)
	assert.Equal(t, 45*time.Second, cfg.Lock.TTL)
	assert.True(t, cfg.Revurdering.SkalUtsetteTilbakekreving)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Lock.Timeout)
}

func TestOverlayRejectsMalformedYAML(t *testing.T) {
	_, err := Overlay(FromEnv(), []byte("lock: [unterminated"))
	assert.Error(t, err)
}

func TestAuthGrupper(t *testing.T) {
	a := Auth{SaksbehandlerGruppe: "g-sb", AttestantGruppe: "g-att"}
	assert.Equal(t, map[string]string{"g-sb": "saksbehandler", "g-att": "attestant"}, a.Grupper())
	assert.Empty(t, Auth{}.Grupper())
}
