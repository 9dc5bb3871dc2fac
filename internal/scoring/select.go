package scoring

import (
	"sort"

	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

// Relevance band thresholds over the final page score.
const (
	HighScoreThreshold   = 5.0
	MediumScoreThreshold = 2.0
)

// RankPages returns the pages ordered by score, highest first. The sort is
// stable so equally scored pages keep document order.
func RankPages(pages []entity.PageMetadata) []entity.PageMetadata {
	ranked := make([]entity.PageMetadata, len(pages))
	copy(ranked, pages)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// IsHighRelevance reports whether a page sits in the high band.
func IsHighRelevance(p entity.PageMetadata) bool {
	return p.Score > HighScoreThreshold
}

// IsMediumRelevance reports whether a page sits in the medium band.
func IsMediumRelevance(p entity.PageMetadata) bool {
	return p.Score > MediumScoreThreshold && p.Score <= HighScoreThreshold
}

// SelectPages picks the pages worth the cost of extraction: the high band,
// the medium band, and low-scoring pages that still look tabular. The
// returned page numbers are deduplicated and sorted ascending. An empty
// selection means the document has nothing worth extracting.
func SelectPages(pages []entity.PageMetadata) []int {
	seen := make(map[int]struct{})
	var selected []int
	add := func(n int) {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			selected = append(selected, n)
		}
	}
	for _, p := range pages {
		switch {
		case IsHighRelevance(p), IsMediumRelevance(p):
			add(p.PageNumber)
		case p.HasTableShape:
			add(p.PageNumber)
		}
	}
	sort.Ints(selected)
	return selected
}

// CountHighRelevance counts pages in the high band; feeds the confidence
// estimate.
func CountHighRelevance(pages []entity.PageMetadata) int {
	n := 0
	for _, p := range pages {
		if IsHighRelevance(p) {
			n++
		}
	}
	return n
}
