package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxInputBytes = 4096
	defaultMaxBatch      = 100
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Limits    LimitsConfig    `yaml:"limits"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig protects the evaluate endpoints. An empty APIKey leaves them open.
type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type LimitsConfig struct {
	MaxInputBytes int `yaml:"max_input_bytes"`
	MaxBatch      int `yaml:"max_batch"`
}

// Addr returns the host:port the plain HTTP listener binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix INTERVALS_ and underscore-separated paths:
//
//	INTERVALS_SERVER_HOST, INTERVALS_SERVER_PORT, INTERVALS_AUTH_API_KEY,
//	INTERVALS_TAILSCALE_ENABLED, INTERVALS_TAILSCALE_HOSTNAME,
//	INTERVALS_TAILSCALE_STATE_DIR, INTERVALS_LIMITS_MAX_INPUT_BYTES,
//	INTERVALS_LIMITS_MAX_BATCH
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INTERVALS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("INTERVALS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("INTERVALS_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("INTERVALS_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("INTERVALS_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("INTERVALS_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("INTERVALS_LIMITS_MAX_INPUT_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.MaxInputBytes = n
		}
	}
	if v := os.Getenv("INTERVALS_LIMITS_MAX_BATCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.MaxBatch = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Limits.MaxInputBytes == 0 {
		cfg.Limits.MaxInputBytes = defaultMaxInputBytes
	}
	if cfg.Limits.MaxBatch == 0 {
		cfg.Limits.MaxBatch = defaultMaxBatch
	}
}

func (c *Config) validate() error {
	if c.Tailscale.Enabled {
		if c.Tailscale.Hostname == "" {
			return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
		}
	} else if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Limits.MaxInputBytes < 0 {
		return fmt.Errorf("limits.max_input_bytes must be positive")
	}
	if c.Limits.MaxBatch < 0 {
		return fmt.Errorf("limits.max_batch must be positive")
	}
	return nil
}
