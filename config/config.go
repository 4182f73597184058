// Package config loads runtime configuration from an optional YAML file and
// the process environment. Environment variables always win over file values
// so deployments can override a checked-in config without editing it.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied before the file and environment are consulted.
const (
	DefaultModel         = "gemini-2.5-flash"
	DefaultMaxIterations = 5
	DefaultLangfuseHost  = "https://cloud.langfuse.com"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// LangfuseConfig holds the trace delivery credentials and endpoint.
type LangfuseConfig struct {
	PublicKey   string `yaml:"public_key"`
	SecretKey   string `yaml:"secret_key"`
	Host        string `yaml:"host"`
	Environment string `yaml:"environment"`
}

// Enabled reports whether real credentials are present. The placeholder
// values from a freshly copied config do not count.
func (c LangfuseConfig) Enabled() bool {
	return c.PublicKey != "" && c.SecretKey != "" &&
		c.PublicKey != "your-public-key" && c.SecretKey != "your-secret-key"
}

// LogConfig controls log verbosity and output encoding.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Config is the full runtime configuration of the agent process.
type Config struct {
	GeminiAPIKey  string         `yaml:"gemini_api_key"`
	Model         string         `yaml:"model"`
	MaxIterations int            `yaml:"max_iterations"`
	Langfuse      LangfuseConfig `yaml:"langfuse"`
	Log           LogConfig      `yaml:"log"`
}

// Load builds the configuration in three layers: defaults, then the YAML file
// at path (skipped when path is empty), then environment variables.
//
// Recognized environment variables:
//
//	GEMINI_API_KEY
//	SEARCHAGENT_MODEL
//	SEARCHAGENT_MAX_ITERATIONS
//	LANGFUSE_PUBLIC_KEY
//	LANGFUSE_SECRET_KEY
//	LANGFUSE_HOST
//	SEARCHAGENT_LOG_LEVEL
//	SEARCHAGENT_LOG_FORMAT
func Load(path string) (*Config, error) {
	cfg := &Config{
		Model:         DefaultModel,
		MaxIterations: DefaultMaxIterations,
		Langfuse: LangfuseConfig{
			Host: DefaultLangfuseHost,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Langfuse.Host == "" {
		cfg.Langfuse.Host = DefaultLangfuseHost
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.Model, "SEARCHAGENT_MODEL")
	setString(&cfg.Langfuse.PublicKey, "LANGFUSE_PUBLIC_KEY")
	setString(&cfg.Langfuse.SecretKey, "LANGFUSE_SECRET_KEY")
	setString(&cfg.Langfuse.Host, "LANGFUSE_HOST")
	setString(&cfg.Log.Level, "SEARCHAGENT_LOG_LEVEL")
	setString(&cfg.Log.Format, "SEARCHAGENT_LOG_FORMAT")

	if v, ok := os.LookupEnv("SEARCHAGENT_MAX_ITERATIONS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxIterations = n
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
