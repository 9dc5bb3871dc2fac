package llm

import (
	"context"

	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

// ExtractRequest carries one assembled context to the extraction service.
// The context already holds the hints block and page ordering; both are
// the assembler's concern.
type ExtractRequest struct {
	Context   string // assembled document text, already budget-bounded
	PageRange string // human-readable page range, for logging only
}

// RegisterExtractor is the interface the pipeline depends on. The client
// is always injected; nothing in the pipeline reaches for a global.
type RegisterExtractor interface {
	// ExtractRegisters sends one request and returns validated registers
	// sorted by address, plus the raw reply for auditing.
	ExtractRegisters(ctx context.Context, req ExtractRequest) (entity.RegisterList, []byte, error)
}
