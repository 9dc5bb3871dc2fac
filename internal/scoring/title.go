package scoring

import (
	"regexp"
	"strings"
)

// Section-title detection only looks at the top of a page; headers below
// the fold are almost always running text.
const titleScanLines = 15

var (
	appendixTitleRe = regexp.MustCompile(`(?i)^appendix\s+[a-z0-9]`)
	sectionTitleRe  = regexp.MustCompile(`(?i)^(chapter|section|appendix)\s+\w`)
	capsTitleRe     = regexp.MustCompile(`^(\d+\.?\d*\.?\d*\s+)?[A-Z][A-Z0-9 /&().-]{3,50}$`)
)

// SectionTitle scans the first lines of a page for an appendix-style
// header, a numbered chapter/section header, or a short all-caps line.
// Returns the first match, or "" when the page has no discernible title.
func SectionTitle(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if appendixTitleRe.MatchString(line) || sectionTitleRe.MatchString(line) {
			return line
		}
		if capsTitleRe.MatchString(line) && strings.ToUpper(line) == line {
			return line
		}
	}
	return ""
}
