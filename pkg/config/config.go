// Package config loads sked-engine configuration from config.yaml with
// environment variable overrides. Secrets (API keys, tokens) come only
// from environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for sked-engine.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// LLM completion endpoint for natural-language translation
	LLM LLMConfig `yaml:"llm"`

	// External schedule store
	Store StoreConfig `yaml:"store"`
}

// LLMConfig holds the completion endpoint settings.
type LLMConfig struct {
	// Provider selects the client: "openai" (any OpenAI-compatible
	// endpoint) or "anthropic".
	Provider string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	Endpoint string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model    string `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	APIKey   string `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML

	// MaxTokens bounds model output per translation.
	MaxTokens int `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"1024"`

	// TimeoutSeconds is the hard deadline for one translation call.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"LLM_TIMEOUT_SECONDS" env-default:"60"`
}

// Timeout returns the translation deadline as a duration.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StoreConfig holds the schedule store connection settings.
type StoreConfig struct {
	BaseURL  string `yaml:"base_url" env:"STORE_BASE_URL" env-default:""`
	APIToken string `yaml:"-" env:"STORE_API_TOKEN"` // Secret - not in YAML
	Table    string `yaml:"table" env:"STORE_TABLE" env-default:"combined-schedule"`

	// TimeoutSeconds bounds one store round trip. Kept short; store
	// failures are surfaced immediately, never retried.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"STORE_TIMEOUT_SECONDS" env-default:"10"`
}

// Timeout returns the store deadline as a duration.
func (c *StoreConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads configuration from config.yaml with environment variable
// overrides. When no config.yaml exists, environment variables alone are
// used. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("llm timeout_seconds must be positive")
	}
	if c.Store.TimeoutSeconds <= 0 {
		return fmt.Errorf("store timeout_seconds must be positive")
	}
	if c.Store.Table == "" {
		return fmt.Errorf("store table is required")
	}
	return nil
}
