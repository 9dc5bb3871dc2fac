package pipeline

import (
	"fmt"
	"sort"

	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

// Batch is one unit of extraction work: a handful of consecutive selected
// pages sent in a single call.
type Batch struct {
	Number int // 1-based
	Pages  []entity.PageContent
}

// PageRange renders the batch's page span for logs and batch summaries.
func (b Batch) PageRange() string {
	if len(b.Pages) == 0 {
		return ""
	}
	first := b.Pages[0].PageNumber
	last := b.Pages[len(b.Pages)-1].PageNumber
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d-%d", first, last)
}

// MakeBatches partitions pages into batches of at most pagesPerBatch,
// preserving document order. Pages arrive from selection already sorted,
// but sorting again keeps the invariant local.
func MakeBatches(pages []entity.PageContent, pagesPerBatch int) []Batch {
	if pagesPerBatch <= 0 {
		pagesPerBatch = 1
	}
	sorted := make([]entity.PageContent, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PageNumber < sorted[j].PageNumber
	})

	var batches []Batch
	for start := 0; start < len(sorted); start += pagesPerBatch {
		end := start + pagesPerBatch
		if end > len(sorted) {
			end = len(sorted)
		}
		batches = append(batches, Batch{
			Number: len(batches) + 1,
			Pages:  sorted[start:end],
		})
	}
	return batches
}
