// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (./config.yaml)
//  3. Default values
//
// Error Handling:
//   - Uses sentinel errors for Go-idiomatic error checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max output tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max output tokens")

	// ErrInvalidDataDir indicates the data directory is invalid.
	ErrInvalidDataDir = errors.New("invalid data directory")

	// ErrInvalidThreshold indicates a confidence threshold is out of range.
	ErrInvalidThreshold = errors.New("invalid confidence threshold")

	// ErrInvalidMemoryWindow indicates the conversation memory window is out of range.
	ErrInvalidMemoryWindow = errors.New("invalid memory window")

	// ErrInvalidSessionSecret indicates the cookie-signing secret is too short.
	ErrInvalidSessionSecret = errors.New("invalid session secret")
)

const (
	// DefaultModelName is the Gemini model used to rephrase answers.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultMemoryWindow is how many exchanges are kept per chat session.
	DefaultMemoryWindow = 5

	// DevSessionSecret is the fallback cookie-signing secret for local
	// development. Validate() warns when it is still in use.
	DevSessionSecret = "dev-key-change-in-production"
)

// Config stores application configuration.
type Config struct {
	// HTTP server
	Addr        string   `mapstructure:"addr" json:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
	TrustProxy  bool     `mapstructure:"trust_proxy" json:"trust_proxy"` // honor X-Real-IP/X-Forwarded-For (behind reverse proxy)
	RateBurst   int      `mapstructure:"rate_burst" json:"rate_burst"`   // per-IP token bucket burst (0 = default)

	// Knowledge base storage
	DataDir string `mapstructure:"data_dir" json:"data_dir"`

	// AI rephrasing
	ModelName       string  `mapstructure:"model_name" json:"model_name"`
	Temperature     float32 `mapstructure:"temperature" json:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" json:"max_output_tokens"`
	GeminiAPIKey    string  `mapstructure:"gemini_api_key" json:"-"` // SENSITIVE: never serialized

	// Similarity thresholds. A match below MinConfidence is discarded,
	// above HighConfidence it is rephrased through the AI, in between it
	// gets a template response.
	MinConfidence    float64 `mapstructure:"min_confidence" json:"min_confidence"`
	MediumConfidence float64 `mapstructure:"medium_confidence" json:"medium_confidence"`
	HighConfidence   float64 `mapstructure:"high_confidence" json:"high_confidence"`

	// Conversation memory
	MemoryWindow int `mapstructure:"memory_window" json:"memory_window"`

	// Cookie signing secret (SESSION_SECRET env)
	SessionSecret string `mapstructure:"session_secret" json:"-"` // SENSITIVE: never serialized
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// PORT overrides the port part of addr (platform deployments set $PORT).
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = "0.0.0.0:" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "0.0.0.0:5000")
	v.SetDefault("data_dir", "data")

	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_output_tokens", 300)

	v.SetDefault("min_confidence", 0.1)
	v.SetDefault("medium_confidence", 0.2)
	v.SetDefault("high_confidence", 0.4)

	v.SetDefault("memory_window", DefaultMemoryWindow)

	v.SetDefault("session_secret", DevSessionSecret)

	v.SetDefault("cors_origins", []string{})
	v.SetDefault("trust_proxy", false)
	v.SetDefault("rate_burst", 0)
}

// bindEnvVariables binds environment variables explicitly.
func bindEnvVariables(v *viper.Viper) {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail).
	// If this panics, it's a bug in our code, not a runtime error.
	mustBind := func(key string, envVars ...string) {
		args := append([]string{key}, envVars...)
		if err := v.BindEnv(args...); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q: %v", key, err))
		}
	}

	mustBind("gemini_api_key", "GEMINI_API_KEY")
	mustBind("session_secret", "SESSION_SECRET")
	mustBind("addr", "APSBOT_ADDR")
	mustBind("data_dir", "APSBOT_DATA_DIR")
	mustBind("model_name", "APSBOT_MODEL_NAME")
	mustBind("cors_origins", "APSBOT_CORS_ORIGINS")
	mustBind("trust_proxy", "APSBOT_TRUST_PROXY")
	mustBind("rate_burst", "APSBOT_RATE_BURST")
}

// IsDev reports whether the service runs with development defaults.
// Cookies drop the Secure flag in this mode so plain HTTP works locally.
func (c *Config) IsDev() bool {
	return c.SessionSecret == DevSessionSecret
}

// warnDevSecret logs a warning when the development cookie secret is active.
func (c *Config) warnDevSecret(logger *slog.Logger) {
	if c.SessionSecret == DevSessionSecret {
		logger.Warn("using development session secret",
			"hint", "set SESSION_SECRET for production deployments")
	}
}

// WarnInsecureDefaults logs warnings for configuration values that are fine
// in development but should not reach production.
func (c *Config) WarnInsecureDefaults(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c.warnDevSecret(logger)
	if c.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, AI rephrasing disabled",
			"hint", "responses fall back to templates")
	}
}
