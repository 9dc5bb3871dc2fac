// Command extract runs the register extraction pipeline over one PDF
// manual and writes the result as JSON or CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/modbus-extractor/internal/cache"
	"github.com/joseph-ayodele/modbus-extractor/internal/common"
	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
	"github.com/joseph-ayodele/modbus-extractor/internal/llm/openai"
	"github.com/joseph-ayodele/modbus-extractor/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		file       = flag.String("file", "", "PDF manual to extract from (required)")
		out        = flag.String("out", "", "output file path (default: <file>.registers.json)")
		format     = flag.String("format", "json", "output format: json or csv")
		configPath = flag.String("config", "", "optional YAML config file")
		simple     = flag.Bool("simple", false, "single-call extraction, no batching")
		batchSize  = flag.Int("batch-size", 0, "pages per batch (overrides config)")
		parallel   = flag.Int("parallel", 0, "parallel batches per wave (overrides config)")
		noCache    = flag.Bool("no-cache", false, "disable the result cache")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}
	if *format != "json" && *format != "csv" {
		printError("Error: --format must be json or csv\n")
		os.Exit(1)
	}
	if *out == "" {
		base := strings.TrimSuffix(*file, filepath.Ext(*file))
		*out = base + ".registers." + *format
	}

	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *configPath != "" {
		if err := cfg.ApplyFile(*configPath); err != nil {
			logger.Error("failed to load config file", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	if *batchSize > 0 {
		cfg.Extraction.PagesPerBatch = *batchSize
	}
	if *parallel > 0 {
		cfg.Extraction.ParallelBatches = *parallel
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("failed to read input file", "path", *file, "error", err)
		os.Exit(1)
	}

	client, err := openai.NewClient(openai.FromLLMConfig(cfg.LLM), logger)
	if err != nil {
		logger.Error("failed to initialize extraction client", "error", err)
		os.Exit(1)
	}

	// Result cache (graceful if unavailable)
	var store pipeline.ResultCache
	if !*noCache {
		path := cfg.Cache.Path
		if path == "" {
			path = filepath.Join(os.TempDir(), "modbus-extractor-cache.db")
		}
		s, err := cache.NewStore(path, cfg.Cache, logger)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it", "error", err)
		} else {
			defer s.Close()
			store = s
		}
	}

	progress := func(p pipeline.Progress) {
		if p.BatchNumber > 0 {
			status := "ok"
			if p.Failed {
				status = "failed"
			}
			fmt.Printf("[%3d%%] batch %d/%d (pages %s): %s, %d registers so far\n",
				p.Percent, p.BatchNumber, p.TotalBatches, p.PageRange, status, p.TotalRecords)
			return
		}
		fmt.Printf("[%3d%%] %s: %s\n", p.Percent, p.Stage, p.Message)
	}

	proc := pipeline.NewProcessor(client, store, cfg.Extraction, logger, progress)

	ctx := context.Background()
	var result *entity.Result
	if *simple {
		result, err = proc.RunSimple(ctx, data)
	} else {
		result, err = proc.Run(ctx, data)
	}
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	var payload []byte
	if *format == "csv" {
		payload = []byte(result.Registers.ToCSV())
	} else {
		payload, err = result.ToJSON()
		if err != nil {
			logger.Error("failed to encode result", "error", err)
			os.Exit(1)
		}
	}
	if err := os.WriteFile(*out, payload, 0644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Extraction complete!\n")
	fmt.Printf("- Registers: %d\n", result.Metadata.RegistersFound)
	fmt.Printf("- Confidence: %s\n", result.Metadata.Confidence)
	fmt.Printf("- Pages analyzed: %d of %d\n", result.Metadata.PagesAnalyzed, result.Metadata.TotalPages)
	if result.Metadata.PartialExtraction {
		fmt.Printf("- Partial result: %d batch failures\n", len(result.Metadata.ProcessingErrors))
	}
	fmt.Printf("- Output: %s\n", *out)
}
