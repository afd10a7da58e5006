package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Enrichment strategies for the status feed.
const (
	EnrichmentDeep    = "deep"
	EnrichmentShallow = "shallow"
)

// Relay sinks.
const (
	RelayNone  = ""
	RelayNATS  = "nats"
	RelayKafka = "kafka"
)

// Config is the fully resolved application configuration.
type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Broker  BrokerConfig  `mapstructure:"broker"`
	Stream  StreamConfig  `mapstructure:"stream"`
	Relay   RelayConfig   `mapstructure:"relay"`
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// FeedConfig tunes the change-feed listener and pipeline.
type FeedConfig struct {
	Channel           string        `mapstructure:"channel"` // Postgres NOTIFY channel
	Buffer            int           `mapstructure:"buffer"`
	Enrichment        string        `mapstructure:"enrichment"`
	ReconnectInterval time.Duration `mapstructure:"reconnect_interval"`
}

type BrokerConfig struct {
	SubscriberBuffer int `mapstructure:"subscriber_buffer"`
}

type StreamConfig struct {
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
}

// RelayConfig forwards broker events to an external bus when Sink is set.
type RelayConfig struct {
	Sink         string   `mapstructure:"sink"`
	NatsURL      string   `mapstructure:"nats_url"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	Topic        string   `mapstructure:"topic"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

var (
	errMissingDSN        = errors.New("db.dsn is required")
	errMissingSigningKey = errors.New("auth.signing_key is required")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("feed.channel", "flight_changes")
	v.SetDefault("feed.buffer", 256)
	v.SetDefault("feed.enrichment", EnrichmentDeep)
	v.SetDefault("feed.reconnect_interval", 5*time.Second)
	v.SetDefault("broker.subscriber_buffer", 32)
	v.SetDefault("stream.heartbeat_interval", 15*time.Second)
	v.SetDefault("relay.sink", RelayNone)
	v.SetDefault("relay.nats_url", "")
	v.SetDefault("relay.kafka_brokers", []string{})
	v.SetDefault("relay.topic", "flights.status")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("metrics.namespace", "flight_booking")
}

// Load resolves configuration from (lowest to highest precedence) defaults,
// configs/config.yml, .env and the process environment, and command-line flags.
func Load(args []string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("flight-booking", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to config file (default: configs/config.yml)")
	flags.String("port", "", "HTTP listen port")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configPath != "" {
		v.SetConfigFile(*configPath)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if f := flags.Lookup("port"); f != nil && f.Changed {
		if err := v.BindPFlag("port", f); err != nil {
			return nil, fmt.Errorf("bind port flag: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required keys and closed enumerations.
func (c *Config) Validate() error {
	if c.DB.DSN == "" {
		return errMissingDSN
	}
	if c.Auth.SigningKey == "" {
		return errMissingSigningKey
	}
	switch c.Feed.Enrichment {
	case EnrichmentDeep, EnrichmentShallow:
	default:
		return fmt.Errorf("feed.enrichment must be %q or %q, got %q", EnrichmentDeep, EnrichmentShallow, c.Feed.Enrichment)
	}
	switch c.Relay.Sink {
	case RelayNone:
	case RelayNATS:
		if c.Relay.NatsURL == "" {
			return errors.New("relay.nats_url is required for the nats sink")
		}
	case RelayKafka:
		if len(c.Relay.KafkaBrokers) == 0 {
			return errors.New("relay.kafka_brokers is required for the kafka sink")
		}
	default:
		return fmt.Errorf("unknown relay.sink %q", c.Relay.Sink)
	}
	if c.Feed.Buffer <= 0 || c.Broker.SubscriberBuffer <= 0 {
		return errors.New("feed.buffer and broker.subscriber_buffer must be positive")
	}
	return nil
}
