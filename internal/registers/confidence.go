package registers

import "github.com/joseph-ayodele/modbus-extractor/constants"

// Confidence thresholds. A batched run over a large manual spreads its
// high-relevance pages thin, so the high tier accepts either a strong
// page ratio or an outright large register count with some high pages.
const (
	highMinRegisters   = 50
	highMinPageRatio   = 0.1
	mediumMinRegisters = 10
	mediumMinHighPages = 3
)

// EstimateConfidence grades an extraction result from its register count
// and how much of the document scored high relevance.
func EstimateConfidence(registersFound, highRelevancePages, totalPages int) constants.ConfidenceLevel {
	if totalPages < 1 {
		totalPages = 1
	}
	ratio := float64(highRelevancePages) / float64(totalPages)

	if registersFound >= highMinRegisters && ratio >= highMinPageRatio {
		return constants.ConfidenceHigh
	}
	if registersFound >= mediumMinRegisters && highRelevancePages >= mediumMinHighPages {
		return constants.ConfidenceMedium
	}
	return constants.ConfidenceLow
}
