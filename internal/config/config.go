// Package config loads and validates the service configuration from a YAML
// file and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gt=0,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	APIVersion string `mapstructure:"api_version"`
}

type ChromaConfig struct {
	URL         string   `mapstructure:"url"`
	APIKey      string   `mapstructure:"api_key"`
	Tenant      string   `mapstructure:"tenant"`
	Database    string   `mapstructure:"database"`
	Collections []string `mapstructure:"collections"`
}

type RAGConfig struct {
	TopK int `mapstructure:"top_k" validate:"gt=0"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests" validate:"gt=0"`
	WindowSeconds int `mapstructure:"window_seconds" validate:"gt=0"`
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

type TranslationConfig struct {
	SmallBatchLimit        int `mapstructure:"small_batch_limit" validate:"gt=0"`
	ChunkSize              int `mapstructure:"chunk_size" validate:"gt=0"`
	ItemBatchSize          int `mapstructure:"item_batch_size" validate:"gt=0"`
	InterLanguageDelaySecs int `mapstructure:"inter_language_delay_seconds" validate:"gte=0"`
}

func (c TranslationConfig) InterLanguageDelay() time.Duration {
	return time.Duration(c.InterLanguageDelaySecs) * time.Second
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Gemini      GeminiConfig      `mapstructure:"gemini"`
	Chroma      ChromaConfig      `mapstructure:"chroma"`
	RAG         RAGConfig         `mapstructure:"rag"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Translation TranslationConfig `mapstructure:"translation"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/nyayasahayak")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("gemini.api_version", "v1beta")
	v.SetDefault("chroma.collections", []string{"legal", "legal-knowledge-base"})
	v.SetDefault("rag.top_k", 5)
	// Free-tier quota is 15 requests/minute; keep a safety buffer.
	v.SetDefault("rate_limit.max_requests", 12)
	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("translation.small_batch_limit", 20)
	v.SetDefault("translation.chunk_size", 15)
	v.SetDefault("translation.item_batch_size", 5)
	v.SetDefault("translation.inter_language_delay_seconds", 3)

	// Credentials and tuning parameters come from the environment only.
	envBindings := map[string]string{
		"gemini.api_key":     "GEMINI_API_KEY",
		"gemini.model":       "GEMINI_MODEL",
		"gemini.api_version": "GEMINI_API_VERSION",
		"chroma.url":         "CHROMADB_PATH",
		"chroma.api_key":     "CHROMADB_API_KEY",
		"chroma.tenant":      "CHROMADB_TENANT",
		"chroma.database":    "CHROMADB_DATABASE",
		"chroma.collections": "CHROMADB_COLLECTIONS",
		"rag.top_k":          "RAG_TOP_K_RESULTS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
