package llm

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/modbus-extractor/constants"
	"github.com/joseph-ayodele/modbus-extractor/internal/common"
	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

// flexInt accepts both bare and quoted integers; some services quote
// every scalar regardless of the schema.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// rawRegister mirrors one reply object before validation.
type rawRegister struct {
	Address     *flexInt `json:"address"`
	Name        string   `json:"name"`
	DataType    string   `json:"datatype"`
	Description string   `json:"description"`
	Writable    bool     `json:"writable"`
}

// ParseReply turns a raw model reply into a validated register list.
//
// The reply goes through fence stripping and syntactic repair, then a
// structural parse. Elements are decoded one by one: an object missing a
// parseable address is dropped without disturbing its siblings, and every
// other field gets a safe default. When the array itself cannot be parsed
// the two-tier regex salvage runs; only a salvage that yields nothing is
// an error. A reply that parses to an empty array is a success with zero
// registers, not an error.
func ParseReply(raw string, logger *slog.Logger) (entity.RegisterList, error) {
	repaired := RepairJSON(StripCodeFences(raw))

	if err := ValidateReplyShape(repaired); err != nil {
		// Advisory only: element validation below decides what survives.
		logger.Warn("llm.reply.schema_mismatch", "error", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(repaired), &items); err != nil {
		salvaged := SalvageRegisters(raw)
		if len(salvaged) == 0 {
			return nil, common.NewAppError("UNRECOGNIZED_REPLY",
				"reply could not be parsed or salvaged", common.ErrUnrecognizedContent)
		}
		logger.Warn("llm.reply.salvaged", "registers", len(salvaged))
		return finalize(salvaged), nil
	}

	var regs entity.RegisterList
	dropped := 0
	for _, item := range items {
		var rr rawRegister
		if err := json.Unmarshal(item, &rr); err != nil || rr.Address == nil || *rr.Address < 0 {
			dropped++
			continue
		}
		addr := int(*rr.Address)
		name := rr.Name
		if name == "" {
			name = defaultRegisterName(addr)
		}
		regs = append(regs, entity.Register{
			Address:     addr,
			Name:        name,
			DataType:    constants.NormalizeDataType(rr.DataType),
			Description: rr.Description,
			Writable:    rr.Writable,
		})
	}
	if dropped > 0 {
		logger.Warn("llm.reply.dropped_objects", "count", dropped)
	}
	return finalize(regs), nil
}

// finalize dedupes by address (first occurrence wins) and sorts ascending.
func finalize(regs entity.RegisterList) entity.RegisterList {
	seen := make(map[int]struct{}, len(regs))
	out := regs[:0]
	for _, r := range regs {
		if _, dup := seen[r.Address]; dup {
			continue
		}
		seen[r.Address] = struct{}{}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}
