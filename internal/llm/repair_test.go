package llm

import (
	"encoding/json"
	"testing"
)

// WHAT: RepairJSON fixes the malformations models actually emit and
// leaves well-formed replies untouched.
func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "well-formed passes through",
			in:   `[{"address": 40001}]`,
			want: `[{"address": 40001}]`,
		},
		{
			name: "trailing comma before closer",
			in:   `[{"address": 40001},]`,
			want: `[{"address": 40001}]`,
		},
		{
			name: "trailing comma inside object",
			in:   `[{"address": 40001,}]`,
			want: `[{"address": 40001}]`,
		},
		{
			name: "truncated mid-object",
			in:   `[{"address": 40001}, {"addre`,
			want: `[{"address": 40001}]`,
		},
		{
			name: "prose before the array",
			in:   `Here are the registers I found: [{"address": 40001}]`,
			want: `[{"address": 40001}]`,
		},
		{
			name: "dangling comma at end",
			in:   `[{"address": 40001}],`,
			want: `[{"address": 40001}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairJSON(tt.in)
			if got != tt.want {
				t.Errorf("RepairJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("repaired output is not valid JSON: %q", got)
			}
		})
	}
}

// WHAT: StripCodeFences unwraps fenced replies and leaves others alone.
func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n[1,2]\n```", "[1,2]"},
		{"```\n[1,2]\n```", "[1,2]"},
		{"[1,2]", "[1,2]"},
	}
	for _, tt := range tests {
		if got := StripCodeFences(tt.in); got != tt.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// WHAT: strict salvage recovers full objects; lenient salvage recovers
// addresses with placeholder fields, and only runs when strict finds nothing.
func TestSalvageRegisters(t *testing.T) {
	t.Run("strict recovers complete objects", func(t *testing.T) {
		text := `garbage {"address": 40001, "name": "Line voltage", "datatype": "UINT16",` +
			` "description": "Phase A, volts", "writable": false} more garbage`
		got := SalvageRegisters(text)
		if len(got) != 1 {
			t.Fatalf("got %d registers, want 1", len(got))
		}
		r := got[0]
		if r.Address != 40001 || r.Name != "Line voltage" || r.Writable {
			t.Errorf("unexpected register: %+v", r)
		}
	})

	t.Run("lenient recovers address-only objects", func(t *testing.T) {
		text := `{"address": 40007, "note": "partial"} {"address": 40009}`
		got := SalvageRegisters(text)
		if len(got) != 2 {
			t.Fatalf("got %d registers, want 2", len(got))
		}
		if got[0].Name != "REG_40007" {
			t.Errorf("lenient salvage name = %q, want REG_40007", got[0].Name)
		}
	})

	t.Run("nothing to salvage", func(t *testing.T) {
		if got := SalvageRegisters("no structured content here"); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}
