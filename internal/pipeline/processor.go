// Package pipeline orchestrates the two-pass extraction flow: score every
// page, materialize the relevant ones, fan batches out to the extraction
// service in bounded waves, and merge the results.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/modbus-extractor/internal/common"
	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
	"github.com/joseph-ayodele/modbus-extractor/internal/llm"
	"github.com/joseph-ayodele/modbus-extractor/internal/pdftext"
	"github.com/joseph-ayodele/modbus-extractor/internal/registers"
	"github.com/joseph-ayodele/modbus-extractor/internal/scoring"
)

// ResultCache stores completed results keyed by document hash. Nil-able;
// the processor runs fine without one.
type ResultCache interface {
	Get(ctx context.Context, docHash string) (*entity.Result, bool, error)
	Set(ctx context.Context, docHash string, res *entity.Result) error
	Hash(data []byte) string
}

// Processor runs extractions. Construct with NewProcessor; zero value is
// not usable.
type Processor struct {
	extractor llm.RegisterExtractor
	cache     ResultCache
	cfg       common.ExtractionConfig
	logger    *slog.Logger
	progress  ProgressFunc
}

// NewProcessor wires a processor. cache and progress may be nil.
func NewProcessor(extractor llm.RegisterExtractor, cache ResultCache, cfg common.ExtractionConfig, logger *slog.Logger, progress ProgressFunc) *Processor {
	if progress == nil {
		progress = noopProgress
	}
	return &Processor{
		extractor: extractor,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
		progress:  progress,
	}
}

// Run executes the full batched pipeline over a raw PDF.
//
// Individual batch failures are isolated: the run completes with the
// surviving batches and marks the result partial. Cancellation is not
// isolated; it aborts the run and surfaces to the caller.
func (p *Processor) Run(ctx context.Context, data []byte) (*entity.Result, error) {
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	logger := p.logger.With("run_id", runID)
	start := time.Now()

	if p.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RunTimeout.Std())
		defer cancel()
	}

	var docHash string
	if p.cache != nil {
		docHash = p.cache.Hash(data)
		if cached, ok, err := p.cache.Get(ctx, docHash); err != nil {
			logger.Warn("pipeline.cache.get_fail", "error", err)
		} else if ok {
			logger.Info("pipeline.cache.hit", "doc_hash", docHash)
			return cached, nil
		}
	}

	logger.Info("pipeline.run.start", "bytes", len(data))
	p.emit(StageScoring, 0, "scoring pages")

	pass1, err := pdftext.ScorePages(ctx, data)
	if err != nil {
		return nil, p.fail(err)
	}
	p.emit(StageScoring, 20, fmt.Sprintf("scored %d pages", pass1.TotalPages))

	selected := scoring.SelectPages(pass1.Pages)
	if len(selected) == 0 {
		return nil, p.fail(common.NewAppError("NO_RELEVANT_PAGES",
			fmt.Sprintf("no relevant pages among %d", pass1.TotalPages),
			common.ErrNoRelevantContent))
	}
	highPages := scoring.CountHighRelevance(pass1.Pages)
	logger.Info("pipeline.pass1.done",
		"total_pages", pass1.TotalPages,
		"selected_pages", len(selected),
		"high_relevance_pages", highPages,
		"hints", len(pass1.Hints))
	p.emit(StageSelection, 30, fmt.Sprintf("selected %d of %d pages", len(selected), pass1.TotalPages))

	pages, err := pdftext.ExtractPages(ctx, data, selected)
	if err != nil {
		return nil, p.fail(err)
	}
	if len(pages) == 0 {
		return nil, p.fail(common.NewAppError("NO_RELEVANT_PAGES",
			"selected pages yielded no text", common.ErrNoRelevantContent))
	}

	batches := MakeBatches(pages, p.cfg.PagesPerBatch)
	p.emit(StageExtraction, extractionStartPercent,
		fmt.Sprintf("extracting %d batches", len(batches)))
	results, batchErrs, err := p.runWaves(ctx, logger, batches, pass1.Pages, pass1.Hints)
	if err != nil {
		return nil, p.fail(err)
	}

	p.emit(StageMerge, 95, "merging batch results")
	merged := p.mergeResults(results)
	res := &entity.Result{
		Registers: merged,
		Metadata: entity.ExtractionMetadata{
			TotalPages:         pass1.TotalPages,
			PagesAnalyzed:      len(pages),
			RegistersFound:     len(merged),
			HighRelevancePages: highPages,
			Confidence:         registers.EstimateConfidence(len(merged), highPages, pass1.TotalPages),
			ProcessingTimeMS:   time.Since(start).Milliseconds(),
			BatchSummary:       batchSummary(len(batches), len(batchErrs)),
			ProcessingErrors:   batchErrs,
			PartialExtraction:  len(batchErrs) > 0,
		},
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, docHash, res); err != nil {
			logger.Warn("pipeline.cache.set_fail", "error", err)
		}
	}

	logger.Info("pipeline.run.done",
		"registers", len(merged),
		"confidence", res.Metadata.Confidence,
		"partial", res.Metadata.PartialExtraction,
		"elapsed_ms", res.Metadata.ProcessingTimeMS)
	p.emit(StageDone, 100,
		fmt.Sprintf("%d registers, confidence %s", len(merged), res.Metadata.Confidence))
	return res, nil
}

// emit publishes a milestone event.
func (p *Processor) emit(stage string, percent int, message string) {
	p.progress(Progress{Stage: stage, Percent: percent, Message: message})
}

// fail publishes the terminal-failure event and returns err unchanged.
func (p *Processor) fail(err error) error {
	p.progress(Progress{Stage: StageFailed, Percent: 100, Message: err.Error(), Failed: true})
	return err
}

// RunSimple extracts in a single call over every readable page. Suited to
// short documents where batching overhead outweighs its benefits.
func (p *Processor) RunSimple(ctx context.Context, data []byte) (*entity.Result, error) {
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	logger := p.logger.With("run_id", runID)
	start := time.Now()

	if p.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RunTimeout.Std())
		defer cancel()
	}

	pages, hints, err := pdftext.ExtractAll(ctx, data)
	if err != nil {
		return nil, p.fail(err)
	}
	logger.Info("pipeline.simple.start", "pages", len(pages))
	p.emit(StageExtraction, extractionStartPercent,
		fmt.Sprintf("extracting %d pages in one call", len(pages)))

	docContext := AssembleContext(pages, nil, hints, p.cfg.ContextCharBudget)
	regs, _, err := p.extractor.ExtractRegisters(ctx, llm.ExtractRequest{
		Context:   docContext,
		PageRange: fmt.Sprintf("1-%d", len(pages)),
	})
	if err != nil {
		return nil, p.fail(err)
	}

	merged := registers.Merge(regs)
	p.emit(StageDone, 100, fmt.Sprintf("%d registers", len(merged)))
	return &entity.Result{
		Registers: merged,
		Metadata: entity.ExtractionMetadata{
			TotalPages:       len(pages),
			PagesAnalyzed:    len(pages),
			RegistersFound:   len(merged),
			Confidence:       registers.EstimateConfidence(len(merged), 0, len(pages)),
			ProcessingTimeMS: time.Since(start).Milliseconds(),
		},
	}, nil
}

// RunWithPageHints re-extracts the named pages and folds the findings
// into a prior result. Prior records always win on address conflict.
func (p *Processor) RunWithPageHints(ctx context.Context, data []byte, prior entity.RegisterList, pageNumbers []int) (*entity.Result, error) {
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	logger := p.logger.With("run_id", runID)
	start := time.Now()

	pages, err := pdftext.ExtractPages(ctx, data, pageNumbers)
	if err != nil {
		return nil, p.fail(err)
	}
	if len(pages) == 0 {
		return nil, p.fail(common.NewAppError("NO_RELEVANT_PAGES",
			"hinted pages yielded no text", common.ErrNoRelevantContent))
	}
	logger.Info("pipeline.incremental.start", "pages", len(pages), "prior_registers", len(prior))

	batches := MakeBatches(pages, p.cfg.PagesPerBatch)
	p.emit(StageExtraction, extractionStartPercent,
		fmt.Sprintf("re-extracting %d batches", len(batches)))
	results, batchErrs, err := p.runWaves(ctx, logger, batches, nil, nil)
	if err != nil {
		return nil, p.fail(err)
	}

	merged := registers.MergeIncremental(prior, p.mergeResults(results))
	p.emit(StageDone, 100, fmt.Sprintf("%d registers after incremental merge", len(merged)))
	return &entity.Result{
		Registers: merged,
		Metadata: entity.ExtractionMetadata{
			PagesAnalyzed:     len(pages),
			RegistersFound:    len(merged),
			Confidence:        registers.EstimateConfidence(len(merged), 0, len(pages)),
			ProcessingTimeMS:  time.Since(start).Milliseconds(),
			BatchSummary:      batchSummary(len(batches), len(batchErrs)),
			ProcessingErrors:  batchErrs,
			PartialExtraction: len(batchErrs) > 0,
		},
	}, nil
}

// runWaves processes batches in waves of ParallelBatches. A wave only
// starts if the context is still live; within a wave, batch failures are
// recorded and swallowed while cancellation propagates.
func (p *Processor) runWaves(ctx context.Context, logger *slog.Logger, batches []Batch, meta []entity.PageMetadata, hints []entity.DocumentHint) ([]entity.BatchResult, []entity.BatchError, error) {
	width := p.cfg.ParallelBatches
	if width <= 0 {
		width = 1
	}

	var (
		mu           sync.Mutex
		results      []entity.BatchResult
		batchErrs    []entity.BatchError
		totalRecords int
		completed    int
	)

	for waveStart := 0; waveStart < len(batches); waveStart += width {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		waveEnd := waveStart + width
		if waveEnd > len(batches) {
			waveEnd = len(batches)
		}

		g, waveCtx := errgroup.WithContext(ctx)
		for _, b := range batches[waveStart:waveEnd] {
			g.Go(func() error {
				regs, _, err := p.extractor.ExtractRegisters(waveCtx, llm.ExtractRequest{
					Context:   AssembleContext(b.Pages, meta, hints, p.cfg.ContextCharBudget),
					PageRange: b.PageRange(),
				})

				mu.Lock()
				defer mu.Unlock()
				completed++
				if err != nil {
					if common.IsCancellation(err) {
						return err
					}
					batchErrs = append(batchErrs, entity.BatchError{
						BatchNumber: b.Number,
						PageRange:   b.PageRange(),
						Message:     err.Error(),
					})
					logger.Warn("pipeline.batch.fail",
						"batch", b.Number, "pages", b.PageRange(), "error", err)
					p.progress(Progress{
						Stage:        StageExtraction,
						Percent:      batchPercent(completed, len(batches)),
						Message:      fmt.Sprintf("batch %d failed: %v", b.Number, err),
						BatchNumber:  b.Number,
						TotalBatches: len(batches),
						PageRange:    b.PageRange(),
						TotalRecords: totalRecords,
						Failed:       true,
					})
					return nil
				}
				results = append(results, entity.BatchResult{
					BatchNumber: b.Number,
					PageRange:   b.PageRange(),
					Registers:   regs,
				})
				totalRecords += len(regs)
				p.progress(Progress{
					Stage:        StageExtraction,
					Percent:      batchPercent(completed, len(batches)),
					Message:      fmt.Sprintf("batch %d done, %d registers", b.Number, len(regs)),
					BatchNumber:  b.Number,
					TotalBatches: len(batches),
					PageRange:    b.PageRange(),
					BatchRecords: len(regs),
					TotalRecords: totalRecords,
				})
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].BatchNumber < results[j].BatchNumber })
	sort.Slice(batchErrs, func(i, j int) bool { return batchErrs[i].BatchNumber < batchErrs[j].BatchNumber })
	return results, batchErrs, nil
}

// mergeResults merges batch outputs in batch order so dedup is
// deterministic regardless of completion order.
func (p *Processor) mergeResults(results []entity.BatchResult) entity.RegisterList {
	lists := make([]entity.RegisterList, 0, len(results))
	for _, r := range results {
		lists = append(lists, r.Registers)
	}
	return registers.Merge(lists...)
}

func batchSummary(total, failed int) string {
	if failed == 0 {
		return fmt.Sprintf("%d batches, all succeeded", total)
	}
	return fmt.Sprintf("%d batches, %d succeeded, %d failed", total, total-failed, failed)
}
