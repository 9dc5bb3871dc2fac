package pipeline

// Run stages, in lifecycle order.
const (
	StageScoring    = "scoring"
	StageSelection  = "selection"
	StageExtraction = "extraction"
	StageMerge      = "merge"
	StageDone       = "done"
	StageFailed     = "failed"
)

// Progress reports one run milestone or one completed batch. Milestone
// events carry Stage, Percent, and Message; batch events additionally set
// BatchNumber and the record counters. Batches complete out of order
// within a wave; BatchNumber identifies which one finished. A terminal
// failure is reported as a final StageFailed event with the error text.
type Progress struct {
	Stage        string
	Percent      int // 0-100 over the whole run
	Message      string
	BatchNumber  int // 0 for milestone events
	TotalBatches int
	PageRange    string
	BatchRecords int // registers found in this batch
	TotalRecords int // cumulative, pre-merge
	Failed       bool
}

// ProgressFunc receives progress events. It is called from worker
// goroutines, serialized by the orchestrator, so implementations need no
// locking of their own.
type ProgressFunc func(Progress)

func noopProgress(Progress) {}

// Percent anchors for the extraction phase; batch completions
// interpolate between them.
const (
	extractionStartPercent = 35
	extractionEndPercent   = 90
)

func batchPercent(completed, total int) int {
	if total <= 0 {
		return extractionEndPercent
	}
	span := extractionEndPercent - extractionStartPercent
	return extractionStartPercent + span*completed/total
}
