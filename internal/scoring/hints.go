package scoring

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

// Context excerpt window around a hint match.
const (
	hintLeadingContext  = 30
	hintTrailingContext = 50
)

// hintPatterns is the fixed, ordered list of document-convention probes.
// Addressing conventions come first; they change how every raw address in
// the document must be interpreted.
var hintPatterns = []struct {
	kind string
	re   *regexp.Regexp
}{
	{"pdu_offset", regexp.MustCompile(`(?i)add\s*40[,.]?000\s*to\s*(the\s*)?address`)},
	{"pdu_addressing", regexp.MustCompile(`(?i)pdu\s*addressing`)},
	{"address_range", regexp.MustCompile(`(?i)addresses?\s*(are|is)\s*(in\s*)?(the\s*)?range\s*\d+`)},
	{"base_address", regexp.MustCompile(`(?i)base\s*address\s*(of|is|:)?\s*\d+`)},
	{"byte_order", regexp.MustCompile(`(?i)(big|little)\s*endian`)},
	{"word_swap", regexp.MustCompile(`(?i)word\s*swap`)},
	{"word_order", regexp.MustCompile(`(?i)high\s*word\s*first|low\s*word\s*first`)},
}

// DocumentHints probes one page for addressing and byte-order conventions.
// Each matching pattern contributes a single hint carrying a short excerpt
// of the surrounding text.
func DocumentHints(text string) []entity.DocumentHint {
	var hints []entity.DocumentHint
	for _, p := range hintPatterns {
		loc := p.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[0] - hintLeadingContext
		if start < 0 {
			start = 0
		}
		end := loc[1] + hintTrailingContext
		if end > len(text) {
			end = len(text)
		}
		hints = append(hints, entity.DocumentHint{
			Kind:    p.kind,
			Context: strings.TrimSpace(text[start:end]),
		})
	}
	return hints
}
