package constants

import "strings"

// DataType is the canonical data type for an extracted Modbus register.
type DataType string

// Stable values (store these exact strings in results).
const (
	DataTypeInt16   DataType = "INT16"   // signed 16-bit, 1 register
	DataTypeUint16  DataType = "UINT16"  // unsigned 16-bit, 1 register
	DataTypeInt32   DataType = "INT32"   // signed 32-bit, 2 registers
	DataTypeUint32  DataType = "UINT32"  // unsigned 32-bit, 2 registers
	DataTypeFloat32 DataType = "FLOAT32" // IEEE-754 single, 2 registers
	DataTypeFloat64 DataType = "FLOAT64" // IEEE-754 double, 4 registers
	DataTypeString  DataType = "STRING"  // ASCII, variable length
	DataTypeBool    DataType = "BOOL"    // single bit in a register
	DataTypeCoil    DataType = "COIL"    // discrete output
)

// DataTypes holds every canonical data type, in declaration order.
var DataTypes = []DataType{
	DataTypeInt16, DataTypeUint16, DataTypeInt32, DataTypeUint32,
	DataTypeFloat32, DataTypeFloat64, DataTypeString, DataTypeBool, DataTypeCoil,
}

// dataTypeAliases maps vendor terminology to canonical types.
var dataTypeAliases = map[string]DataType{
	"int":     DataTypeInt16,
	"int16":   DataTypeInt16,
	"sint16":  DataTypeInt16,
	"integer": DataTypeInt16,
	"uint":    DataTypeUint16,
	"uint16":  DataTypeUint16,
	"word":    DataTypeUint16,
	"int32":   DataTypeInt32,
	"sint32":  DataTypeInt32,
	"long":    DataTypeInt32,
	"dint":    DataTypeInt32,
	"uint32":  DataTypeUint32,
	"dword":   DataTypeUint32,
	"ulong":   DataTypeUint32,
	"udint":   DataTypeUint32,
	"float":   DataTypeFloat32,
	"float32": DataTypeFloat32,
	"real":    DataTypeFloat32,
	"single":  DataTypeFloat32,
	"float64": DataTypeFloat64,
	"double":  DataTypeFloat64,
	"lreal":   DataTypeFloat64,
	"string":  DataTypeString,
	"ascii":   DataTypeString,
	"bool":    DataTypeBool,
	"boolean": DataTypeBool,
	"bit":     DataTypeBool,
	"coil":    DataTypeCoil,
}

var validDataTypes = func() map[DataType]struct{} {
	m := make(map[DataType]struct{}, len(DataTypes))
	for _, dt := range DataTypes {
		m[dt] = struct{}{}
	}
	return m
}()

// NormalizeDataType maps a raw vendor token to a canonical DataType.
// Unrecognized tokens default to UINT16, the safest single-register read.
func NormalizeDataType(raw string) DataType {
	key := strings.ToLower(strings.TrimSpace(raw))
	if dt, ok := dataTypeAliases[key]; ok {
		return dt
	}
	upper := DataType(strings.ToUpper(key))
	if _, ok := validDataTypes[upper]; ok {
		return upper
	}
	return DataTypeUint16
}

// IsValidDataType reports whether dt is one of the canonical types.
func IsValidDataType(dt DataType) bool {
	_, ok := validDataTypes[dt]
	return ok
}
