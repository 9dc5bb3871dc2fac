// Package scoring holds the pure page-relevance heuristics for pass 1.
// Everything here is regex-based and deliberately approximate: the goal is
// ranking pages cheaply, not parsing them.
package scoring

import (
	"regexp"
	"strings"
)

// Per-term contribution caps keep repetition spam from dominating a score.
const (
	termContributionCap = 5.0
	tabularLineWeight   = 0.5
	tabularBonusCap     = 6.0
	appendixBonus       = 10.0
	titleKeywordBonus   = 5.0
)

// strongPatterns are high-signal indicators of register documentation.
// Matched against lowercased text.
var strongPatterns = []struct {
	re     *regexp.Regexp
	weight float64
}{
	{regexp.MustCompile(`\bmodbus\b`), 1.5},
	{regexp.MustCompile(`\bregister\s*(address|map|table|list)\b`), 2.0},
	{regexp.MustCompile(`\bholding\s*register`), 1.5},
	{regexp.MustCompile(`\binput\s*register`), 1.5},
	{regexp.MustCompile(`\b40[0-9]{3,4}\b`), 1.0},
	{regexp.MustCompile(`\b30[0-9]{3,4}\b`), 1.0},
	{regexp.MustCompile(`0x[0-9a-f]{2,4}\b`), 0.5},
	{regexp.MustCompile(`scaling:\s*[\d./]+`), 1.0},
	{regexp.MustCompile(`offset:\s*-?[\d.]+`), 0.8},
}

// keywordWeights is the domain vocabulary for the density term.
var keywordWeights = map[string]float64{
	// high value
	"modbus": 1.5, "register": 1.0, "holding": 0.8, "coil": 0.8,
	"scaling": 1.2, "offset": 1.0, "data range": 1.0,
	// medium value
	"address": 0.5, "uint16": 0.8, "int16": 0.8, "uint32": 0.8,
	"int32": 0.8, "float32": 0.8, "r/w": 0.7, "read/write": 0.7,
	// protocol specific
	"function code": 0.6, "fc03": 0.8, "fc06": 0.8, "fc16": 0.8,
	"slave": 0.4, "master": 0.4, "rtu": 0.5,
	// equipment specific
	"parameter": 0.3, "setpoint": 0.4,
}

var (
	numericTokenRe = regexp.MustCompile(`^(0x[0-9a-fA-F]+|-?\d+([.,]\d+)?%?)$`)
	typeKeywordRe  = regexp.MustCompile(`(?i)\b(u?int(8|16|32|64)?|float(32|64)?|bool(ean)?|coil|word|dword|real|double|bitmask)\b`)
)

// Score computes the relevance score for one page of text.
// Text with no domain keywords and no tabular structure scores exactly 0.
func Score(text string) float64 {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return 0
	}

	var score float64
	for _, p := range strongPatterns {
		if n := len(p.re.FindAllStringIndex(lower, -1)); n > 0 {
			score += capped(float64(n) * p.weight)
		}
	}
	for kw, w := range keywordWeights {
		if n := strings.Count(lower, kw); n > 0 {
			score += capped(float64(n) * w)
		}
	}
	if bonus := tabularLineWeight * float64(countTabularLines(text)); bonus > 0 {
		if bonus > tabularBonusCap {
			bonus = tabularBonusCap
		}
		score += bonus
	}

	if title := SectionTitle(text); title != "" {
		titleLower := strings.ToLower(title)
		if strings.Contains(titleLower, "appendix") && hasRegisterIndicators(lower) {
			score += appendixBonus
		}
		if strings.Contains(titleLower, "modbus") {
			score += titleKeywordBonus
		}
	}

	return score
}

func capped(v float64) float64 {
	if v > termContributionCap {
		return termContributionCap
	}
	return v
}

// hasRegisterIndicators reports whether any strong pattern matches.
func hasRegisterIndicators(lower string) bool {
	for _, p := range strongPatterns {
		if p.re.MatchString(lower) {
			return true
		}
	}
	return false
}

// lineQualifies reports whether a line looks like a register-table row:
// at least two numeric tokens, or a data-type keyword.
func lineQualifies(line string) bool {
	if typeKeywordRe.MatchString(line) {
		return true
	}
	numeric := 0
	for _, tok := range strings.Fields(line) {
		if numericTokenRe.MatchString(strings.Trim(tok, ",;()")) {
			numeric++
			if numeric >= 2 {
				return true
			}
		}
	}
	return false
}

// countTabularLines counts all qualifying lines, contiguous or not.
// Used for the score bonus; contiguity only matters for HasTableShape.
func countTabularLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if lineQualifies(line) {
			n++
		}
	}
	return n
}

// HasTableShape reports whether the page contains at least five strictly
// consecutive qualifying lines. Any non-qualifying line resets the streak;
// scattered qualifying lines never count.
func HasTableShape(text string) bool {
	const minConsecutive = 5
	streak := 0
	for _, line := range strings.Split(text, "\n") {
		if lineQualifies(line) {
			streak++
			if streak >= minConsecutive {
				return true
			}
		} else {
			streak = 0
		}
	}
	return false
}
