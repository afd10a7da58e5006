package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
db:
  dsn: postgres://app@localhost/flights
auth:
  signing_key: test-key
feed:
  enrichment: shallow
`)

	cfg, err := Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DB.DSN != "postgres://app@localhost/flights" {
		t.Errorf("dsn: got %q", cfg.DB.DSN)
	}
	if cfg.Feed.Enrichment != EnrichmentShallow {
		t.Errorf("enrichment: got %q", cfg.Feed.Enrichment)
	}
	if cfg.Port != "8080" {
		t.Errorf("default port: got %q", cfg.Port)
	}
	if cfg.Feed.Channel != "flight_changes" || cfg.Feed.Buffer != 256 {
		t.Errorf("feed defaults: %+v", cfg.Feed)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("token ttl default: got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Stream.HeartbeatInterval != 15*time.Second {
		t.Errorf("heartbeat default: got %v", cfg.Stream.HeartbeatInterval)
	}
}

func TestLoad_EnvAndFlagOverrides(t *testing.T) {
	path := writeConfig(t, `
port: "9000"
db:
  dsn: postgres://file
auth:
  signing_key: file-key
`)
	t.Setenv("AUTH_SIGNING_KEY", "env-key")

	cfg, err := Load([]string{"--config", path, "--port", "7070"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.SigningKey != "env-key" {
		t.Errorf("env override: got %q", cfg.Auth.SigningKey)
	}
	if cfg.Port != "7070" {
		t.Errorf("flag override: got %q", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DB:     DBConfig{DSN: "postgres://x"},
			Auth:   AuthConfig{SigningKey: "k"},
			Feed:   FeedConfig{Enrichment: EnrichmentDeep, Buffer: 1},
			Broker: BrokerConfig{SubscriberBuffer: 1},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing dsn", func(c *Config) { c.DB.DSN = "" }, "db.dsn"},
		{"missing key", func(c *Config) { c.Auth.SigningKey = "" }, "signing_key"},
		{"bad enrichment", func(c *Config) { c.Feed.Enrichment = "medium" }, "feed.enrichment"},
		{"nats without url", func(c *Config) { c.Relay.Sink = RelayNATS }, "nats_url"},
		{"kafka without brokers", func(c *Config) { c.Relay.Sink = RelayKafka }, "kafka_brokers"},
		{"unknown sink", func(c *Config) { c.Relay.Sink = "sqs" }, "unknown relay.sink"},
		{"zero buffer", func(c *Config) { c.Broker.SubscriberBuffer = 0 }, "must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
