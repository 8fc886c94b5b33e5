// Package config loads the coldreach configuration: YAML file with defaults,
// environment overrides on top. The upstream credential is only ever read
// from the environment and is excluded from marshaling.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all coldreach configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Limits   LimitsConfig   `yaml:"limits"`

	// APIKey comes from GEMINI_API_KEY at process start. Never from the
	// file, never written back out.
	APIKey string `yaml:"-"`
}

// ServerConfig configures the gateway listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// UpstreamConfig configures the generative-content endpoint.
type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LimitsConfig holds the gateway validation policy and orchestrator deadline.
type LimitsConfig struct {
	MaxPayloadBytes     int `yaml:"max_payload_bytes"`
	RateMaxRequests     int `yaml:"rate_max_requests"`
	RateWindowSeconds   int `yaml:"rate_window_seconds"`
	StageTimeoutSeconds int `yaml:"stage_timeout_seconds"`
}

// Default returns the reference policy values.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Upstream: UpstreamConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta",
			Model:          "gemini-2.5-pro",
			TimeoutSeconds: 60,
		},
		Limits: LimitsConfig{
			MaxPayloadBytes:     10000,
			RateMaxRequests:     10,
			RateWindowSeconds:   60,
			StageTimeoutSeconds: 90,
		},
	}
}

// Load builds the config: defaults, then the YAML file at path (optional),
// then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if base := os.Getenv("COLDREACH_UPSTREAM_URL"); base != "" {
		c.Upstream.BaseURL = base
	}
	if model := os.Getenv("COLDREACH_MODEL"); model != "" {
		c.Upstream.Model = model
	}
	c.APIKey = os.Getenv("GEMINI_API_KEY")
}

// UpstreamTimeout returns the upstream HTTP timeout as a duration.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// RateWindow returns the rate-limit window as a duration.
func (c Config) RateWindow() time.Duration {
	return time.Duration(c.Limits.RateWindowSeconds) * time.Second
}

// StageTimeout returns the per-stage orchestrator deadline.
func (c Config) StageTimeout() time.Duration {
	return time.Duration(c.Limits.StageTimeoutSeconds) * time.Second
}
