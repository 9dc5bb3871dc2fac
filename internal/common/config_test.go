package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WHAT: env vars override defaults, and a YAML file overlays both while
// leaving omitted keys alone.
func TestConfigLayering(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("EXTRACT_PAGES_PER_BATCH", "6")
	t.Setenv("OPENAI_MODEL", "")

	cfg := LoadConfig()
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("default model = %q", cfg.LLM.Model)
	}
	if cfg.Extraction.PagesPerBatch != 6 {
		t.Errorf("env override lost: pages_per_batch = %d", cfg.Extraction.PagesPerBatch)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "extraction:\n  parallel_batches: 3\n  run_timeout: 90s\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile() error = %v", err)
	}
	if cfg.Extraction.ParallelBatches != 3 {
		t.Errorf("file override lost: parallel_batches = %d", cfg.Extraction.ParallelBatches)
	}
	if cfg.Extraction.RunTimeout.Std() != 90*time.Second {
		t.Errorf("file override lost: run_timeout = %v", cfg.Extraction.RunTimeout)
	}
	// Keys absent from the file keep their env-derived values.
	if cfg.Extraction.PagesPerBatch != 6 {
		t.Errorf("overlay clobbered pages_per_batch = %d", cfg.Extraction.PagesPerBatch)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("overlay clobbered api key = %q", cfg.LLM.APIKey)
	}
}

// WHAT: validation rejects configurations the pipeline cannot run with.
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing api key", func(c *Config) { c.LLM.APIKey = "" }, true},
		{"zero batch size", func(c *Config) { c.Extraction.PagesPerBatch = 0 }, true},
		{"zero parallelism", func(c *Config) { c.Extraction.ParallelBatches = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LLM:        LLMConfig{APIKey: "k"},
				Extraction: ExtractionConfig{PagesPerBatch: 4, ParallelBatches: 2},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
