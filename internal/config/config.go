// Package config loads service configuration from file, environment and defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Solana   SolanaConfig   `mapstructure:"solana"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Neo4j    Neo4jConfig    `mapstructure:"neo4j"`
	API      APIConfig      `mapstructure:"api"`
}

// AppConfig represents application-wide settings.
type AppConfig struct {
	Env       string `mapstructure:"env"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// SolanaConfig configures the JSON-RPC client.
type SolanaConfig struct {
	RPCURL     string        `mapstructure:"rpc_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
}

// FetchConfig bounds sampling and fan-out.
type FetchConfig struct {
	DefaultLimit     int `mapstructure:"default_limit"`
	FanOut           int `mapstructure:"fan_out"`
	MaxScanAddresses int `mapstructure:"max_scan_addresses"`
	DefaultHops      int `mapstructure:"default_hops"`
}

// CacheConfig selects the fetch cache backend. Backend is "memory", "redis"
// or "none".
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RedisConfig represents Redis connection settings.
type RedisConfig struct {
	Addrs     []string `mapstructure:"addrs"`
	Password  string   `mapstructure:"password"`
	DB        int      `mapstructure:"db"`
	KeyPrefix string   `mapstructure:"key_prefix"`
}

// PostgresConfig configures the audit store. An empty DSN keeps the
// audit trail in memory.
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
	Migrate  bool   `mapstructure:"migrate"`
}

// NATSConfig represents NATS alert publishing settings.
type NATSConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	URL               string        `mapstructure:"url"`
	SubjectPrefix     string        `mapstructure:"subject_prefix"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts"`
	ReconnectDelay    time.Duration `mapstructure:"reconnect_delay"`
}

// Neo4jConfig represents graph export settings.
type Neo4jConfig struct {
	Enabled                      bool          `mapstructure:"enabled"`
	URI                          string        `mapstructure:"uri"`
	Username                     string        `mapstructure:"username"`
	Password                     string        `mapstructure:"password"`
	Database                     string        `mapstructure:"database"`
	MaxConnectionPoolSize        int           `mapstructure:"max_connection_pool_size"`
	ConnectionAcquisitionTimeout time.Duration `mapstructure:"connection_acquisition_timeout"`
}

// APIConfig represents HTTP server settings.
type APIConfig struct {
	Port            int           `mapstructure:"port"`
	RateLimit       float64       `mapstructure:"rate_limit"` // requests per second per client IP
	RateBurst       int           `mapstructure:"rate_burst"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load loads configuration from config.yaml, environment variables and
// defaults, in decreasing precedence from environment to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/wallet-forensics")
	return load(v)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// Map environment variables to nested config keys: API_PORT -> api.port
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
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

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Solana.RPCURL == "" {
		return fmt.Errorf("solana.rpc_url is required")
	}
	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if len(c.Redis.Addrs) == 0 {
			return fmt.Errorf("cache.backend redis requires redis.addrs")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Solana defaults
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.timeout", "15s")
	v.SetDefault("solana.max_retries", 2)
	v.SetDefault("solana.retry_delay", "500ms")
	v.SetDefault("solana.max_delay", "5s")

	// Fetch defaults
	v.SetDefault("fetch.default_limit", 25)
	v.SetDefault("fetch.fan_out", 6)
	v.SetDefault("fetch.max_scan_addresses", 50)
	v.SetDefault("fetch.default_hops", 2)

	// Cache defaults
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "60s")

	// Redis defaults
	v.SetDefault("redis.addrs", []string{"localhost:6379"})
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "forensics:")

	// Postgres defaults
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.migrate", true)

	// NATS defaults
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject_prefix", "forensics")
	v.SetDefault("nats.connect_timeout", "10s")
	v.SetDefault("nats.reconnect_attempts", 5)
	v.SetDefault("nats.reconnect_delay", "2s")

	// Neo4j defaults
	v.SetDefault("neo4j.enabled", false)
	v.SetDefault("neo4j.uri", "neo4j://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "password")
	v.SetDefault("neo4j.database", "neo4j")
	v.SetDefault("neo4j.max_connection_pool_size", 50)
	v.SetDefault("neo4j.connection_acquisition_timeout", "60s")

	// API defaults
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.rate_limit", 2.0)
	v.SetDefault("api.rate_burst", 10)
	v.SetDefault("api.max_upload_bytes", 5<<20)
	v.SetDefault("api.read_timeout", "30s")
	v.SetDefault("api.write_timeout", "120s")
	v.SetDefault("api.shutdown_timeout", "15s")

	// Provider URLs are usually handed over as a plain variable
	v.BindEnv("solana.rpc_url", "SOLANA_RPC_URL", "RPC_URL")
	v.BindEnv("postgres.dsn", "POSTGRES_DSN", "DATABASE_URL")
}
