package constants

import "testing"

// WHAT: vendor type vocabulary maps onto the canonical set, with UINT16
// as the fallback for anything unrecognized.
func TestNormalizeDataType(t *testing.T) {
	tests := []struct {
		raw  string
		want DataType
	}{
		{"UINT16", DataTypeUint16},
		{"uint16", DataTypeUint16},
		{"  Word ", DataTypeUint16},
		{"dint", DataTypeInt32},
		{"DWORD", DataTypeUint32},
		{"real", DataTypeFloat32},
		{"LREAL", DataTypeFloat64},
		{"ascii", DataTypeString},
		{"bit", DataTypeBool},
		{"coil", DataTypeCoil},
		{"", DataTypeUint16},
		{"complex128", DataTypeUint16},
	}
	for _, tt := range tests {
		if got := NormalizeDataType(tt.raw); got != tt.want {
			t.Errorf("NormalizeDataType(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestIsValidDataType(t *testing.T) {
	if !IsValidDataType(DataTypeFloat32) {
		t.Error("FLOAT32 should be valid")
	}
	if IsValidDataType(DataType("FLOAT16")) {
		t.Error("FLOAT16 should not be valid")
	}
}
