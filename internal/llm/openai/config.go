package openai

import (
	"time"

	"github.com/joseph-ayodele/modbus-extractor/internal/common"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 120 * time.Second
)

// Config holds the OpenAI-compatible client configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
}

// FromLLMConfig builds a client Config from the application config,
// filling in defaults for anything unset.
func FromLLMConfig(c common.LLMConfig) Config {
	cfg := Config{
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		Temperature: c.Temperature,
		Timeout:     c.Timeout.Std(),
		MaxRetries:  2,
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
}

// Validate checks that the config can produce a working client.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return common.NewAppError("CONFIG_ERROR", "API key is required", common.ErrInvalidInput)
	}
	return nil
}
