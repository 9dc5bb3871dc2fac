package entity

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/modbus-extractor/constants"
)

// Register represents one extracted Modbus register definition.
// Address is the unique key within a result set, standardized to the
// 40xxx holding-register / 30xxx input-register numbering.
type Register struct {
	Address     int                `json:"address"`
	Name        string             `json:"name"`
	DataType    constants.DataType `json:"datatype"`
	Description string             `json:"description"`
	Writable    bool               `json:"writable"`
}

// RegisterList is a slice of registers with serialization helpers.
type RegisterList []Register

// ToCSV renders the registers as CSV with a header row.
func (rl RegisterList) ToCSV() string {
	lines := make([]string, 0, len(rl)+1)
	lines = append(lines, "address,name,datatype,description,writable")
	for _, r := range rl {
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(r.Address),
			csvEscape(r.Name),
			string(r.DataType),
			csvEscape(r.Description),
			strconv.FormatBool(r.Writable),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// ToJSON renders the registers as an indented JSON document.
func (rl RegisterList) ToJSON() (string, error) {
	b, err := json.MarshalIndent(map[string]any{"registers": rl}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func csvEscape(s string) string {
	escaped := strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(escaped, ",\"\n") {
		return `"` + escaped + `"`
	}
	return escaped
}
