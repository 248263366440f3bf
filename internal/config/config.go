// Package config loads process configuration from .env and the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/eduexcel/icfesgen/internal/llm"
)

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Provider string `env:"LLM_PROVIDER, default=openai"`

	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL, default=gpt-4o"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	AnthropicKey   string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel string `env:"ANTHROPIC_MODEL, default=claude-haiku"`

	GeminiKey   string `env:"GEMINI_API_KEY"`
	GeminiModel string `env:"GEMINI_MODEL, default=gemini-flash"`

	OpenRouterKey   string `env:"OPENROUTER_API_KEY"`
	OpenRouterModel string `env:"OPENROUTER_MODEL, default=openai/gpt-4o-mini"`

	TimeoutMs        int  `env:"OPENAI_TIMEOUT_MS, default=20000"`
	SeedRandomize    bool `env:"SEED_RANDOMIZE, default=true"`
	StrictMode       bool `env:"STRICT_MODE, default=true"`
	DebugJSON        bool `env:"DEBUG_JSON, default=false"`
	RetryMaxAttempts int  `env:"LLM_RETRY_MAX_ATTEMPTS, default=1"`

	HTTPAddr string `env:"HTTP_ADDR, default=:8000"`
	LogMode  string `env:"LOG_MODE, default=development"`
	DBPath   string `env:"EDUEXCEL_DB"`
}

// Load reads an optional .env file from the working directory and then
// the process environment. Variables already set win over the file.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes variables from l only.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges. Missing credentials are not an error here:
// the batch path runs disabled without them.
func (c *Config) Validate() error {
	var errs []error
	if c.TimeoutMs < 1 {
		errs = append(errs, fmt.Errorf("OPENAI_TIMEOUT_MS must be positive, got %d", c.TimeoutMs))
	}
	if c.RetryMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("LLM_RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts))
	}
	switch c.Provider {
	case "openai", "anthropic", "gemini", "openrouter", "mock":
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER %q is not one of openai, anthropic, gemini, openrouter, mock", c.Provider))
	}
	return errors.Join(errs...)
}

// Timeout is OPENAI_TIMEOUT_MS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// LLM maps the environment onto the provider configuration.
func (c *Config) LLM() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.Provider
	out.OpenAI = llm.OpenAIConfig{APIKey: c.OpenAIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL}
	out.Anthropic = llm.AnthropicConfig{APIKey: c.AnthropicKey, Model: c.AnthropicModel}
	out.Gemini = llm.GeminiConfig{APIKey: c.GeminiKey, Model: c.GeminiModel}
	out.OpenRouter.APIKey = c.OpenRouterKey
	out.OpenRouter.Model = c.OpenRouterModel
	out.Retry.MaxAttempts = c.RetryMaxAttempts
	out.Timeout = c.Timeout()
	out.SeedRandomize = c.SeedRandomize
	out.KeepBodies = c.DebugJSON
	return out
}
