package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIBaseURL      = "http://localhost:4000"
	DefaultKeychainService = "com.fitpro.app"
	DefaultKeychainAccount = "authToken"

	SecretStoreMemory = "memory"
	SecretStoreRedis  = "redis"
)

type Config struct {
	Environment string `toml:"-"`
	APIBaseURL  string `toml:"api_base_url"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	LogJSON     bool   `toml:"log_json"`
	// session token persistence
	SecretStore     string `toml:"secret_store"`
	RedisHost       string `toml:"redis_host"`
	RedisPort       string `toml:"redis_port"`
	KeychainService string `toml:"keychain_service"`
	KeychainAccount string `toml:"keychain_account"`
	// telemetry
	MetricsEnabled bool `toml:"metrics_enabled"`
	SentryEnabled  bool `toml:"sentry_enabled"`
	TracingEnabled bool `toml:"tracing_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()
	return cfg, cfg.validate()
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

// Default returns the development configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Environment: "development"}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.SecretStore == "" {
		c.SecretStore = SecretStoreMemory
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.KeychainService == "" {
		c.KeychainService = DefaultKeychainService
	}
	if c.KeychainAccount == "" {
		c.KeychainAccount = DefaultKeychainAccount
	}
}

func (c *Config) validate() error {
	switch c.SecretStore {
	case SecretStoreMemory, SecretStoreRedis:
		return nil
	default:
		return fmt.Errorf("unknown secret store: %s", c.SecretStore)
	}
}
