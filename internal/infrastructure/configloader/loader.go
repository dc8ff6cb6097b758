package configloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ZerionConfig holds Zerion API specific configurations. The API key is
// taken from the ZERION_API_KEY environment variable, never from the file.
type ZerionConfig struct {
	APIKey               string `yaml:"-"`
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	MaxAttempts          int    `yaml:"maxAttempts"`
	ProcessingBackoffMs  int64  `yaml:"processingBackoffMs"`
	RateLimitBackoffMs   int64  `yaml:"rateLimitBackoffMs"`
}

// DebankConfig holds DeBank API specific configurations. The access key is
// taken from the DEBANK_ACCESS_KEY environment variable, never from the file.
type DebankConfig struct {
	AccessKey            string  `yaml:"-"`
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	MaxAttempts          int     `yaml:"maxAttempts"`
	ProcessingBackoffMs  int64   `yaml:"processingBackoffMs"`
	RateLimitBackoffMs   int64   `yaml:"rateLimitBackoffMs"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
}

// CacheConfig holds result cache configurations.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttlSeconds"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentChains int `yaml:"maxConcurrentChains"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Zerion      ZerionConfig      `yaml:"zerion"`
	Debank      DebankConfig      `yaml:"debank"`
	Cache       CacheConfig       `yaml:"cache"`
	Performance PerformanceConfig `yaml:"performance"`
}

// Load reads the YAML configuration file from the given path, unmarshals it,
// applies defaults and picks up provider credentials from the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	cfg.Zerion.APIKey = os.Getenv("ZERION_API_KEY")
	cfg.Debank.AccessKey = os.Getenv("DEBANK_ACCESS_KEY")

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		// Compare requests fan out across chains and retry on 202/429, so
		// the write budget is generous.
		cfg.Server.WriteTimeoutSeconds = 120
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Zerion.BaseURL == "" {
		cfg.Zerion.BaseURL = "https://api.zerion.io"
	}
	if cfg.Zerion.RequestTimeoutMillis <= 0 {
		cfg.Zerion.RequestTimeoutMillis = 20000
	}
	if cfg.Zerion.MaxAttempts <= 0 {
		cfg.Zerion.MaxAttempts = 3
	}
	if cfg.Zerion.ProcessingBackoffMs <= 0 {
		cfg.Zerion.ProcessingBackoffMs = 3000
	}
	if cfg.Zerion.RateLimitBackoffMs <= 0 {
		cfg.Zerion.RateLimitBackoffMs = 5000
	}

	if cfg.Debank.BaseURL == "" {
		cfg.Debank.BaseURL = "https://pro-openapi.debank.com"
	}
	if cfg.Debank.RequestTimeoutMillis <= 0 {
		cfg.Debank.RequestTimeoutMillis = 20000
	}
	if cfg.Debank.MaxAttempts <= 0 {
		cfg.Debank.MaxAttempts = 3
	}
	if cfg.Debank.ProcessingBackoffMs <= 0 {
		cfg.Debank.ProcessingBackoffMs = 3000
	}
	if cfg.Debank.RateLimitBackoffMs <= 0 {
		cfg.Debank.RateLimitBackoffMs = 5000
	}
	if cfg.Debank.RequestsPerSecond <= 0 {
		cfg.Debank.RequestsPerSecond = 4
	}

	if cfg.Cache.TTLSeconds < 0 {
		cfg.Cache.TTLSeconds = 0
	}

	if cfg.Performance.MaxConcurrentChains <= 0 {
		cfg.Performance.MaxConcurrentChains = 8
	}
}
