// Package llm provides model configuration and thin client wrappers for the providers
// that back the ATS scorer.
package llm

import "fmt"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// DefaultMaxTokens bounds the length of a model reply.
const DefaultMaxTokens = 4096

// Config holds the provider and the ordered list of candidate models to try.
type Config struct {
	Provider    Provider
	Models      []string
	MaxTokens   int64
	Temperature float32
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the Gemini candidates, most preferred first.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
			"gemini-2.0-flash",
			"gemini-1.5-flash",
			"gemini-1.5-pro",
			"gemini-1.5-flash-latest",
		},
		MaxTokens:   DefaultMaxTokens,
		Temperature: 0.1,
	}
}

// DefaultClaudeConfig returns the Claude candidates, most preferred first.
func DefaultClaudeConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Models: []string{
			"claude-3-7-sonnet-latest",
			"claude-3-5-haiku-latest",
		},
		MaxTokens:   DefaultMaxTokens,
		Temperature: 0.1,
	}
}

// ConfigFor returns the default configuration for a provider name.
// An empty name selects Gemini.
func ConfigFor(provider string) (*Config, error) {
	switch Provider(provider) {
	case "", ProviderGemini:
		return DefaultGeminiConfig(), nil
	case ProviderAnthropic:
		return DefaultClaudeConfig(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}

// WithModels returns a copy of the config with its candidate list replaced.
// An empty list keeps the current candidates.
func (c *Config) WithModels(models ...string) *Config {
	newConfig := *c
	if len(models) > 0 {
		newConfig.Models = append([]string(nil), models...)
	} else {
		newConfig.Models = append([]string(nil), c.Models...)
	}
	return &newConfig
}
