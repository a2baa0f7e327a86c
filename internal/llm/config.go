package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend: anthropic, openai, gemini, openrouter
	// or mock.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from MATHFORGE_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "MATHFORGE_LLM_PROVIDER")
	set(&cfg.Anthropic.APIKey, "MATHFORGE_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "MATHFORGE_ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "MATHFORGE_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "MATHFORGE_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "MATHFORGE_OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "MATHFORGE_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "MATHFORGE_GEMINI_MODEL")
	set(&cfg.OpenRouter.APIKey, "MATHFORGE_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "MATHFORGE_OPENROUTER_MODEL")

	if v := os.Getenv("MATHFORGE_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables in priority
// order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "MATHFORGE_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "MATHFORGE_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "MATHFORGE_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "MATHFORGE_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}

// Resolve returns the explicitly configured provider when its key is set,
// otherwise a discovered one.
func Resolve() (Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return cfg, nil
	} else if os.Getenv("MATHFORGE_LLM_PROVIDER") != "" {
		return Config{}, err
	}
	if found, ok := DiscoverConfig(); ok {
		return found, nil
	}
	return Config{}, fmt.Errorf("no LLM provider configured: set MATHFORGE_LLM_PROVIDER and its API key")
}
