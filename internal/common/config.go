package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML files can say "90s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all application configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Cache      CacheConfig      `yaml:"cache"`
}

// LLMConfig holds extraction-service client configuration.
type LLMConfig struct {
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"-"` // env only, never from file
	BaseURL     string   `yaml:"base_url"`
	Temperature float32  `yaml:"temperature"`
	Timeout     Duration `yaml:"timeout"`
}

// ExtractionConfig holds pipeline tuning knobs.
type ExtractionConfig struct {
	PagesPerBatch     int      `yaml:"pages_per_batch"`
	ParallelBatches   int      `yaml:"parallel_batches"`
	ContextCharBudget int      `yaml:"context_char_budget"`
	RunTimeout        Duration `yaml:"run_timeout"`
}

// CacheConfig holds result-cache configuration.
type CacheConfig struct {
	Path       string   `yaml:"path"`
	TTL        Duration `yaml:"ttl"`
	MaxEntries int      `yaml:"max_entries"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     Duration(getEnvAsDuration("OPENAI_TIMEOUT", 120*time.Second)),
		},
		Extraction: ExtractionConfig{
			PagesPerBatch:     getEnvAsInt("EXTRACT_PAGES_PER_BATCH", 4),
			ParallelBatches:   getEnvAsInt("EXTRACT_PARALLEL_BATCHES", 2),
			ContextCharBudget: getEnvAsInt("EXTRACT_CONTEXT_CHAR_BUDGET", 80000),
			RunTimeout:        Duration(getEnvAsDuration("EXTRACT_RUN_TIMEOUT", 5*time.Minute)),
		},
		Cache: CacheConfig{
			Path:       getEnv("CACHE_PATH", ""),
			TTL:        Duration(getEnvAsDuration("CACHE_TTL", 60*time.Minute)),
			MaxEntries: getEnvAsInt("CACHE_MAX_ENTRIES", 64),
		},
	}
}

// ApplyFile overlays settings from a YAML file onto the config.
// Env-derived values remain for any key the file omits.
func (c *Config) ApplyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Extraction.PagesPerBatch <= 0 {
		return NewAppError("CONFIG_ERROR", "pages_per_batch must be positive", ErrInvalidInput)
	}
	if c.Extraction.ParallelBatches <= 0 {
		return NewAppError("CONFIG_ERROR", "parallel_batches must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
