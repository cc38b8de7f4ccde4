// Package config loads server configuration from an optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LLMConfig selects the scoring provider and its candidate models.
type LLMConfig struct {
	Provider        string        `yaml:"provider"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key"`
	Models          []string      `yaml:"models"` // empty means the provider defaults
	MaxTokens       int64         `yaml:"max_tokens"`
	Temperature     float32       `yaml:"temperature"`
	Timeout         time.Duration `yaml:"timeout"`
}

// ATSConfig controls resume analysis uploads.
type ATSConfig struct {
	MinTextLength  int   `yaml:"min_text_length"`
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	UseBrowser     bool  `yaml:"use_browser"` // render job URLs with headless Chrome when needed
}

// EmphasisConfig points at an optional keyword file replacing the built-in table.
type EmphasisConfig struct {
	File string `yaml:"file"`
}

// AuthConfig groups session and identity-provider settings.
type AuthConfig struct {
	JWT               JWTConfig      `yaml:"jwt"`
	Password          PasswordConfig `yaml:"password"`
	FirebaseProjectID string         `yaml:"firebase_project_id"`
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"`
	DefaultLimit    int           `yaml:"default_limit"`
	DefaultWindow   time.Duration `yaml:"default_window"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	Whitelist       []string      `yaml:"whitelist"`
	Blacklist       []string      `yaml:"blacklist"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	CORS      CORSConfig      `yaml:"cors"`
	LLM       LLMConfig       `yaml:"llm"`
	ATS       ATSConfig       `yaml:"ats"`
	Emphasis  EmphasisConfig  `yaml:"emphasis"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		LLM: LLMConfig{
			Provider:    "gemini",
			MaxTokens:   4096,
			Temperature: 0.1,
			Timeout:     90 * time.Second,
		},
		ATS: ATSConfig{
			MinTextLength:  50,
			MaxUploadBytes: 5 << 20,
		},
		Auth: AuthConfig{
			JWT:      JWTConfig{ExpirationHours: DefaultJWTExpirationHours},
			Password: PasswordConfig{BcryptCost: DefaultBcryptCost},
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path (if any) over the defaults, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables that are set.
func (c *Config) applyEnv() error {
	var err error
	if c.Server.Port, err = envInt("PORT", c.Server.Port); err != nil {
		return err
	}
	c.Database.URL = envString("DATABASE_URL", c.Database.URL)

	c.LLM.Provider = envString("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.GeminiAPIKey = envString("GEMINI_API_KEY", c.LLM.GeminiAPIKey)
	c.LLM.AnthropicAPIKey = envString("ANTHROPIC_API_KEY", c.LLM.AnthropicAPIKey)
	if models := envList("LLM_MODELS"); len(models) > 0 {
		c.LLM.Models = models
	}

	if c.ATS.MinTextLength, err = envInt("ATS_MIN_TEXT_LENGTH", c.ATS.MinTextLength); err != nil {
		return err
	}
	if c.ATS.UseBrowser, err = envBool("ATS_USE_BROWSER", c.ATS.UseBrowser); err != nil {
		return err
	}
	c.Emphasis.File = envString("EMPHASIS_FILE", c.Emphasis.File)

	c.Auth.JWT.Secret = envString("JWT_SECRET", c.Auth.JWT.Secret)
	if c.Auth.JWT.ExpirationHours, err = envInt("JWT_EXPIRATION_HOURS", c.Auth.JWT.ExpirationHours); err != nil {
		return err
	}
	if c.Auth.Password.BcryptCost, err = envInt("BCRYPT_COST", c.Auth.Password.BcryptCost); err != nil {
		return err
	}
	c.Auth.Password.Pepper = envString("PASSWORD_PEPPER", c.Auth.Password.Pepper)
	c.Auth.FirebaseProjectID = envString("FIREBASE_PROJECT_ID", c.Auth.FirebaseProjectID)

	if origins := envList("FRONTEND_URL"); len(origins) > 0 {
		c.CORS.AllowedOrigins = origins
	}

	if c.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled); err != nil {
		return err
	}
	if c.RateLimit.DefaultLimit, err = envInt("RATE_LIMIT_DEFAULT_LIMIT", c.RateLimit.DefaultLimit); err != nil {
		return err
	}
	if c.RateLimit.DefaultWindow, err = envDuration("RATE_LIMIT_DEFAULT_WINDOW", c.RateLimit.DefaultWindow); err != nil {
		return err
	}
	if c.RateLimit.CleanupInterval, err = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", c.RateLimit.CleanupInterval); err != nil {
		return err
	}
	if list := envList("RATE_LIMIT_WHITELIST"); len(list) > 0 {
		c.RateLimit.Whitelist = list
	}
	if list := envList("RATE_LIMIT_BLACKLIST"); len(list) > 0 {
		c.RateLimit.Blacklist = list
	}

	c.Log.Level = envString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("LOG_FORMAT", c.Log.Format)
	return nil
}

// Validate checks ranges and enumerations. It does not require secrets; see RequireServe.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be 1-65535, got %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("config error: 'llm.provider' must be gemini or anthropic, got %q", c.LLM.Provider)
	}
	if c.ATS.MinTextLength < 0 {
		return fmt.Errorf("config error: 'ats.min_text_length' must be non-negative")
	}
	if c.ATS.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'ats.max_upload_bytes' must be positive")
	}
	if c.Auth.JWT.ExpirationHours < 1 {
		return fmt.Errorf("config error: JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.Auth.JWT.ExpirationHours)
	}
	if err := c.Auth.Password.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 1 || c.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: rate limit needs a positive limit and window")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config error: 'log.level': %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config error: 'log.format' must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// RequireServe checks the settings the HTTP server cannot run without.
func (c *Config) RequireServe() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.APIKey() == "" {
		if c.LLM.Provider == "anthropic" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		} else {
			missing = append(missing, "GEMINI_API_KEY")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config error: %s required but not set", strings.Join(missing, ", "))
	}
	return nil
}

// APIKey returns the key for the selected provider.
func (c *Config) APIKey() string {
	if c.LLM.Provider == "anthropic" {
		return c.LLM.AnthropicAPIKey
	}
	return c.LLM.GeminiAPIKey
}

// NewLogger builds the process logger from the log section.
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
