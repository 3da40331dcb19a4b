package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
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

// RetryConfig controls exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with the cheap, fast model of each provider.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envBindings maps TACIT_* variables onto Config fields.
func envBindings(cfg *Config) map[string]*string {
	return map[string]*string{
		"TACIT_LLM_PROVIDER":        &cfg.Provider,
		"TACIT_ANTHROPIC_API_KEY":   &cfg.Anthropic.APIKey,
		"TACIT_ANTHROPIC_MODEL":     &cfg.Anthropic.Model,
		"TACIT_OPENAI_API_KEY":      &cfg.OpenAI.APIKey,
		"TACIT_OPENAI_MODEL":        &cfg.OpenAI.Model,
		"TACIT_OPENAI_BASE_URL":     &cfg.OpenAI.BaseURL,
		"TACIT_GEMINI_API_KEY":      &cfg.Gemini.APIKey,
		"TACIT_GEMINI_MODEL":        &cfg.Gemini.Model,
		"TACIT_OPENROUTER_API_KEY":  &cfg.OpenRouter.APIKey,
		"TACIT_OPENROUTER_MODEL":    &cfg.OpenRouter.Model,
		"TACIT_OPENROUTER_BASE_URL": &cfg.OpenRouter.BaseURL,
	}
}

// ConfigFromEnv applies TACIT_* variables over DefaultConfig. The second
// result reports whether TACIT_LLM_PROVIDER was set.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()
	for name, field := range envBindings(&cfg) {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if d, err := time.ParseDuration(os.Getenv("TACIT_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg, os.Getenv("TACIT_LLM_PROVIDER") != ""
}

// DiscoverConfig falls back to the vendors' standard key variables, in order
// Anthropic, OpenAI, Gemini, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
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

// ResolveConfig prefers explicit TACIT_* settings and falls back to
// discovery. ok is false when no provider is configured at all.
func ResolveConfig() (Config, bool) {
	if cfg, explicit := ConfigFromEnv(); explicit {
		return cfg, true
	}
	return DiscoverConfig()
}

// Validate checks the selected provider has a key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider", c.Provider)
	}
	return nil
}
