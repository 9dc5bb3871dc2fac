package pdftext

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// yLineTolerance is the vertical jump (points) that starts a new line.
	// Tight enough that dense register tables keep one row per line.
	yLineTolerance = 2.0

	// xWordGap is the horizontal gap (points) that warrants a space
	// between fragments on the same line.
	xWordGap = 1.0
)

// reconstructText concatenates fragments in content order, breaking lines
// whenever the vertical position jumps by more than yLineTolerance. This
// recovers row structure from position-only layout data without a layout
// engine; table rows come out as individual lines, which is all the
// scorer needs.
func reconstructText(fragments []pdf.Text) string {
	if len(fragments) == 0 {
		return ""
	}

	var sb strings.Builder
	var prev *pdf.Text
	for i := range fragments {
		frag := &fragments[i]
		if frag.S == "" {
			continue
		}
		if prev != nil {
			if math.Abs(frag.Y-prev.Y) > yLineTolerance {
				sb.WriteByte('\n')
			} else if frag.X-(prev.X+prev.W) > xWordGap && !endsWithSpace(prev.S) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(frag.S)
		prev = frag
	}
	return strings.TrimSpace(sb.String())
}

func endsWithSpace(s string) bool {
	return s != "" && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t')
}
