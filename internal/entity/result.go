package entity

import (
	"encoding/json"

	"github.com/joseph-ayodele/modbus-extractor/constants"
)

// BatchResult is the outcome of one successful batch extraction call.
type BatchResult struct {
	BatchNumber int          `json:"batch_number"`
	PageRange   string       `json:"page_range"`
	Registers   RegisterList `json:"registers"`
}

// BatchError records one failed batch without aborting its siblings.
type BatchError struct {
	BatchNumber int    `json:"batch_number"`
	PageRange   string `json:"page_range"`
	Message     string `json:"message"`
}

// ExtractionMetadata is the audit trail returned alongside the registers.
type ExtractionMetadata struct {
	TotalPages         int                       `json:"total_pages"`
	PagesAnalyzed      int                       `json:"pages_analyzed"`
	RegistersFound     int                       `json:"registers_found"`
	HighRelevancePages int                       `json:"high_relevance_pages"`
	Confidence         constants.ConfidenceLevel `json:"confidence"`
	ProcessingTimeMS   int64                     `json:"processing_time_ms"`
	BatchSummary       string                    `json:"batch_summary,omitempty"`
	ProcessingErrors   []BatchError              `json:"processing_errors,omitempty"`
	PartialExtraction  bool                      `json:"partial_extraction"`
}

// Result is a complete extraction outcome; ownership transfers to the caller.
type Result struct {
	Registers RegisterList       `json:"registers"`
	Metadata  ExtractionMetadata `json:"metadata"`
}

// ToJSON renders the full result, metadata included, as indented JSON.
func (r *Result) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
