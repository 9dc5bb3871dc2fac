package llm

import (
	"regexp"
	"strconv"

	"github.com/joseph-ayodele/modbus-extractor/constants"
	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

// Pattern-based salvage for replies that defeat structural parsing even
// after repair. Strict first: all five fields in canonical order. Lenient
// only when strict finds literally nothing — it trades precision for
// recall, so it must stay the last resort.
var (
	strictObjectRe = regexp.MustCompile(
		`\{\s*"address"\s*:\s*"?(\d+)"?\s*,\s*"name"\s*:\s*"((?:[^"\\]|\\.)*)"\s*,\s*` +
			`"datatype"\s*:\s*"([^"]*)"\s*,\s*"description"\s*:\s*"((?:[^"\\]|\\.)*)"\s*,\s*` +
			`"writable"\s*:\s*(true|false)`)

	lenientObjectRe = regexp.MustCompile(`\{[^{}]*?"address"\s*:\s*"?(\d+)"?[^{}]*\}`)
)

// SalvageRegisters scrapes register objects out of unparseable text.
// Returns nil when neither tier matches anything.
func SalvageRegisters(text string) entity.RegisterList {
	var out entity.RegisterList

	for _, m := range strictObjectRe.FindAllStringSubmatch(text, -1) {
		addr, err := strconv.Atoi(m[1])
		if err != nil || addr < 0 {
			continue
		}
		out = append(out, entity.Register{
			Address:     addr,
			Name:        unescapeJSONString(m[2]),
			DataType:    constants.NormalizeDataType(m[3]),
			Description: unescapeJSONString(m[4]),
			Writable:    m[5] == "true",
		})
	}
	if len(out) > 0 {
		return out
	}

	for _, m := range lenientObjectRe.FindAllStringSubmatch(text, -1) {
		addr, err := strconv.Atoi(m[1])
		if err != nil || addr < 0 {
			continue
		}
		out = append(out, entity.Register{
			Address:  addr,
			Name:     defaultRegisterName(addr),
			DataType: constants.DataTypeUint16,
		})
	}
	return out
}

func defaultRegisterName(addr int) string {
	return "REG_" + strconv.Itoa(addr)
}

func unescapeJSONString(s string) string {
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return unquoted
	}
	return s
}
