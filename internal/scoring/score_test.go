package scoring

import (
	"strings"
	"testing"
)

// WHAT: pages with no domain vocabulary and no tabular structure score zero.
// WHY: pass 1 must be able to discard prose pages outright.
func TestScoreIrrelevantTextIsZero(t *testing.T) {
	texts := []string{
		"",
		"   \n\n  ",
		"The quick brown fox jumps over the lazy dog.\nIt was a sunny day.",
	}
	for _, text := range texts {
		if got := Score(text); got != 0 {
			t.Errorf("Score(%q) = %v, want 0", text, got)
		}
	}
}

// WHAT: repeating one keyword many times cannot push the score past the
// per-term caps.
// WHY: boilerplate footers repeating "Modbus" on every page must not
// outrank a real register table.
func TestScoreRepetitionIsCapped(t *testing.T) {
	spam := strings.Repeat("modbus ", 10)
	// One strong pattern plus one keyword, both capped at 5.0.
	if got := Score(spam); got > 12 {
		t.Errorf("Score(10x modbus) = %v, want <= 12", got)
	}
	if Score(spam) <= Score("modbus") {
		t.Error("repetition should still score above a single mention")
	}
}

// WHAT: a page with a register table outscores the same vocabulary as prose.
func TestScoreTabularBonus(t *testing.T) {
	table := strings.Join([]string{
		"40001 1 UINT16 Line voltage",
		"40002 1 UINT16 Line current",
		"40003 2 FLOAT32 Power factor",
		"40004 1 INT16 Frequency",
		"40005 2 UINT32 Energy total",
	}, "\n")
	prose := "voltage and current and power factor and frequency and energy"
	if Score(table) <= Score(prose) {
		t.Errorf("table score %v should exceed prose score %v", Score(table), Score(prose))
	}
}

// WHAT: HasTableShape demands five strictly consecutive qualifying lines.
// WHY: scattered numeric lines (page numbers, dates) must not read as a table.
func TestHasTableShape(t *testing.T) {
	row := "40001 1 UINT16 Voltage"
	gap := "See the installation chapter for wiring details."

	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{
			name:  "five consecutive rows",
			lines: []string{row, row, row, row, row},
			want:  true,
		},
		{
			name:  "four rows then interruption then one",
			lines: []string{row, row, row, row, gap, row},
			want:  false,
		},
		{
			name:  "streak recovers after interruption",
			lines: []string{row, gap, row, row, row, row, row},
			want:  true,
		},
		{
			name:  "scattered rows never accumulate",
			lines: []string{row, gap, row, gap, row, gap, row, gap, row},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasTableShape(strings.Join(tt.lines, "\n")); got != tt.want {
				t.Errorf("HasTableShape() = %v, want %v", got, tt.want)
			}
		})
	}
}

// WHAT: a type keyword qualifies a line even with fewer than two numbers.
func TestLineQualifies(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"40001 1 UINT16 Voltage", true},
		{"Holding FLOAT32 scaled value", true}, // type keyword alone
		{"40001 2", true},                      // two numeric tokens
		{"page 7", false},                      // one numeric token
		{"wiring and installation notes", false},
	}
	for _, tt := range tests {
		if got := lineQualifies(tt.line); got != tt.want {
			t.Errorf("lineQualifies(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// WHAT: SectionTitle finds appendix headers, numbered sections, and
// all-caps headers near the top of the page.
func TestSectionTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"appendix", "Appendix B Modbus Register Map\nbody text", "Appendix B Modbus Register Map"},
		{"numbered caps", "7.2 MODBUS COMMUNICATION\nbody", "7.2 MODBUS COMMUNICATION"},
		{"no title", "this page is just running text\nwith no header at all", ""},
		{"below the fold ignored", strings.Repeat("filler line\n", 20) + "Appendix C Registers", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SectionTitle(tt.text); got != tt.want {
				t.Errorf("SectionTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

// WHAT: an appendix page with register indicators gets the appendix bonus.
// WHY: vendors hide complete register maps in appendices with low keyword
// density on the page itself.
func TestScoreAppendixBonus(t *testing.T) {
	withIndicators := "Appendix B Register Map\n40001 voltage\n"
	withoutIndicators := "Appendix B Warranty Terms\nlegal text\n"
	if Score(withIndicators) <= Score(withoutIndicators)+5 {
		t.Errorf("appendix with registers (%v) should clearly outscore appendix without (%v)",
			Score(withIndicators), Score(withoutIndicators))
	}
}

// WHAT: DocumentHints detects addressing and byte-order conventions with
// surrounding context.
func TestDocumentHints(t *testing.T) {
	text := "Note: add 40000 to the address shown in each table. " +
		"All 32-bit values are transmitted big endian with high word first."
	hints := DocumentHints(text)

	kinds := make(map[string]string)
	for _, h := range hints {
		kinds[h.Kind] = h.Context
	}
	for _, want := range []string{"pdu_offset", "byte_order", "word_order"} {
		ctx, ok := kinds[want]
		if !ok {
			t.Errorf("missing hint kind %q, got %v", want, kinds)
			continue
		}
		if ctx == "" {
			t.Errorf("hint %q has empty context", want)
		}
	}
	if len(hints) != 3 {
		t.Errorf("got %d hints, want 3: %v", len(hints), hints)
	}
}
