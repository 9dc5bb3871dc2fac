package llm

import (
	"regexp"
	"strings"
)

var commaBeforeCloserRe = regexp.MustCompile(`,\s*([\]}])`)

// RepairJSON applies best-effort syntactic repair to a structured reply
// before parsing. It fixes the malformations extraction services actually
// produce: trailing commas, replies truncated mid-array, and prose before
// the array. A well-formed input passes through unchanged.
func RepairJSON(s string) string {
	t := strings.TrimSpace(s)

	// Trailing comma immediately before a closing bracket or brace.
	t = commaBeforeCloserRe.ReplaceAllString(t, "$1")

	// Dangling comma at the very end of the text.
	t = strings.TrimSpace(strings.TrimSuffix(t, ","))

	// Truncated reply: cut back to the last complete object and close the
	// array. A partial tail object is lost; the rest is kept.
	if !strings.HasSuffix(t, "]") {
		if idx := strings.LastIndex(t, "}"); idx >= 0 {
			t = t[:idx+1] + "]"
		}
	}

	// Prose or fencing residue before the array.
	if !strings.HasPrefix(t, "[") {
		if idx := strings.Index(t, "["); idx >= 0 {
			t = t[idx:]
		}
	}

	return t
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// StripCodeFences removes a markdown code fence wrapper if present.
func StripCodeFences(s string) string {
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
