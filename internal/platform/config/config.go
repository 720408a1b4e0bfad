package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. FromEnv fills it from defaults
// and environment variables; Load additionally overlays a YAML file.
type Config struct {
	Server      Server      `yaml:"server"`
	Database    Database    `yaml:"database"`
	Redis       RedisConfig `yaml:"redis"`
	Kafka       Kafka       `yaml:"kafka"`
	Lock        Lock        `yaml:"lock"`
	Auth        Auth        `yaml:"auth"`
	Revurdering Revurdering `yaml:"revurdering"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string `yaml:"addr"`
	JWTSigningKey string `yaml:"jwt_signing_key"`
	JWTIssuer     string `yaml:"jwt_issuer"`
	JWTAudience   string `yaml:"jwt_audience"`
	AdminToken    string `yaml:"admin_token"`
	LogLevel      string `yaml:"log_level"`
}

type Database struct {
	// DSN is empty when the in-memory stores should be used.
	DSN          string        `yaml:"dsn"`
	TxTimeout    time.Duration `yaml:"tx_timeout"`
	MaxOpenConns int           `yaml:"max_open_conns"`
}

type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type Kafka struct {
	Brokers          []string `yaml:"brokers"`
	StatistikkTopic  string   `yaml:"statistikk_topic"`
	AuditTopic       string   `yaml:"audit_topic"`
	AuditGroup       string   `yaml:"audit_group"`
	EnsureTopics     bool     `yaml:"ensure_topics"`
	TopicPartitions  int32    `yaml:"topic_partitions"`
	TopicReplication int16    `yaml:"topic_replication"`
}

// Lock configures the per-sak lock serializing writers.
type Lock struct {
	TTL     time.Duration `yaml:"ttl"`
	Timeout time.Duration `yaml:"timeout"`
}

// Auth maps directory group ids to roles and keys the fnr digests.
type Auth struct {
	SaksbehandlerGruppe string `yaml:"saksbehandler_gruppe"`
	AttestantGruppe     string `yaml:"attestant_gruppe"`
	VeilederGruppe      string `yaml:"veileder_gruppe"`
	FnrHashKey          string `yaml:"fnr_hash_key"`
}

// Grupper returns the group id to rolle mapping. Unset groups are skipped.
func (a Auth) Grupper() map[string]string {
	out := make(map[string]string, 3)
	for gruppe, rolle := range map[string]string{
		a.SaksbehandlerGruppe: "saksbehandler",
		a.AttestantGruppe:     "attestant",
		a.VeilederGruppe:      "veileder",
	} {
		if gruppe != "" {
			out[gruppe] = rolle
		}
	}
	return out
}

type Revurdering struct {
	// SkalUtsetteTilbakekreving lets iverksetting proceed while the
	// tilbakekrevingsbehandling is handled outside the revurdering.
	SkalUtsetteTilbakekreving bool `yaml:"skal_utsette_tilbakekreving"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: env("SUPSTONAD_ADDR", ":8080"),
			// Use a default for development - should be overridden in production
			JWTSigningKey: env("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     env("JWT_ISSUER", "supstonad"),
			JWTAudience:   env("JWT_AUDIENCE", "supstonad"),
			AdminToken:    os.Getenv("ADMIN_TOKEN"),
			LogLevel:      env("LOG_LEVEL", "info"),
		},
		Database: Database{
			DSN:          os.Getenv("DATABASE_URL"),
			TxTimeout:    envDuration("DATABASE_TX_TIMEOUT", 5*time.Second),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 20),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers:          envList("KAFKA_BROKERS"),
			StatistikkTopic:  env("KAFKA_STATISTIKK_TOPIC", "supstonad.revurdering-statistikk"),
			AuditTopic:       env("KAFKA_AUDIT_TOPIC", "supstonad.audit"),
			AuditGroup:       env("KAFKA_AUDIT_GROUP", "supstonad-audit"),
			EnsureTopics:     os.Getenv("KAFKA_ENSURE_TOPICS") == "true",
			TopicPartitions:  int32(envInt("KAFKA_TOPIC_PARTITIONS", 3)),
			TopicReplication: int16(envInt("KAFKA_TOPIC_REPLICATION", 1)),
		},
		Lock: Lock{
			TTL:     envDuration("LOCK_TTL", 30*time.Second),
			Timeout: envDuration("LOCK_TIMEOUT", 2*time.Second),
		},
		Auth: Auth{
			SaksbehandlerGruppe: os.Getenv("GRUPPE_SAKSBEHANDLER"),
			AttestantGruppe:     os.Getenv("GRUPPE_ATTESTANT"),
			VeilederGruppe:      os.Getenv("GRUPPE_VEILEDER"),
			FnrHashKey:          env("FNR_HASH_KEY", "dev-fnr-hash-key"),
		},
		Revurdering: Revurdering{
			SkalUtsetteTilbakekreving: os.Getenv("SKAL_UTSETTE_TILBAKEKREVING") == "true",
		},
	}
}

// Load reads FromEnv and overlays the YAML file named by
// SUPSTONAD_CONFIG_FILE, if set. Keys absent from the file keep their
// environment value.
func Load() (Config, error) {
	cfg := FromEnv()
	path := os.Getenv("SUPSTONAD_CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Overlay(cfg, raw)
}

// Overlay decodes raw YAML on top of cfg.
func Overlay(cfg Config, raw []byte) (Config, error) {
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
