// Package config provides Viper-based hierarchical configuration management.
// Precedence, highest first: flags bound by the caller, PDFEXP_* environment
// variables, the config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "PDFEXP"

// Embedding providers.
const (
	ProviderAuto       = "auto"
	ProviderGemini     = "gemini"
	ProviderVocabulary = "vocabulary"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Extraction struct {
		Mode string `mapstructure:"mode" yaml:"mode"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Embedding struct {
		Provider          string `mapstructure:"provider" yaml:"provider"`
		Model             string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		APIKey            string `mapstructure:"api_key" yaml:"-"`
	} `mapstructure:"embedding" yaml:"embedding"`

	Categorization struct {
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
		PrototypesFile      string  `mapstructure:"prototypes_file" yaml:"prototypes_file"`
	} `mapstructure:"categorization" yaml:"categorization"`

	PDF struct {
		StrictValidation bool `mapstructure:"strict_validation" yaml:"strict_validation"`
		MaxTextBytes     int  `mapstructure:"max_text_bytes" yaml:"max_text_bytes"`
	} `mapstructure:"pdf" yaml:"pdf"`
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// EmbeddingTimeout returns the per-call embedding timeout.
func (c *Config) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutSeconds) * time.Second
}

// InitializeConfig loads the configuration. An empty configFile searches
// config.yaml in $HOME/.pdf-expenses, ./.pdf-expenses and the working
// directory; a missing file is not an error.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.pdf-expenses")
		v.AddConfigPath(".pdf-expenses")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// The API key is also accepted under its conventional unprefixed name.
	if err := v.BindEnv("embedding.api_key", EnvPrefix+"_EMBEDDING_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind API key environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("extraction.mode", "itemized")

	v.SetDefault("embedding.provider", ProviderAuto)
	v.SetDefault("embedding.model", "text-embedding-004")
	v.SetDefault("embedding.timeout_seconds", 10)
	v.SetDefault("embedding.requests_per_minute", 600)
	v.SetDefault("embedding.api_key", "")

	v.SetDefault("categorization.confidence_threshold", 0.3)
	v.SetDefault("categorization.prototypes_file", "")

	v.SetDefault("pdf.strict_validation", false)
	v.SetDefault("pdf.max_text_bytes", 100*1024)
}

func validateConfig(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	if utf8.RuneCountInString(cfg.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}

	switch cfg.Extraction.Mode {
	case "itemized", "bill":
	default:
		return fmt.Errorf("extraction.mode must be 'itemized' or 'bill', got: %s", cfg.Extraction.Mode)
	}

	switch cfg.Embedding.Provider {
	case ProviderAuto, ProviderVocabulary:
	case ProviderGemini:
		if cfg.Embedding.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when embedding.provider is gemini")
		}
	default:
		return fmt.Errorf("embedding.provider must be auto, gemini or vocabulary, got: %s", cfg.Embedding.Provider)
	}
	if cfg.Embedding.TimeoutSeconds < 1 || cfg.Embedding.TimeoutSeconds > 300 {
		return fmt.Errorf("embedding.timeout_seconds must be between 1 and 300, got: %d", cfg.Embedding.TimeoutSeconds)
	}
	if cfg.Embedding.RequestsPerMinute < 0 {
		return fmt.Errorf("embedding.requests_per_minute must not be negative, got: %d", cfg.Embedding.RequestsPerMinute)
	}

	if cfg.Categorization.ConfidenceThreshold < 0.0 || cfg.Categorization.ConfidenceThreshold > 1.0 {
		return fmt.Errorf("categorization.confidence_threshold must be between 0.0 and 1.0, got: %f", cfg.Categorization.ConfidenceThreshold)
	}

	if cfg.PDF.MaxTextBytes < 1024 {
		return fmt.Errorf("pdf.max_text_bytes must be at least 1024, got: %d", cfg.PDF.MaxTextBytes)
	}
	return nil
}

// UseGemini reports whether the Gemini embedder should be used.
func (c *Config) UseGemini() bool {
	switch c.Embedding.Provider {
	case ProviderGemini:
		return true
	case ProviderAuto:
		return c.Embedding.APIKey != ""
	}
	return false
}
