package llm


const systemPrompt = `You are an expert at extracting Modbus register definitions from technical documentation.

Extract every Modbus register you can find in the provided text. Return ONLY a JSON array of register objects with no surrounding prose, markdown, or code fences.

Each object must have exactly these fields:
- "address": integer, the standardized Modbus address
- "name": string, the register name or a short label
- "datatype": string, one of INT16, UINT16, INT32, UINT32, FLOAT32, FLOAT64, STRING, BOOL, COIL
- "description": string, what the register holds (units, scaling, range if stated)
- "writable": boolean

Address standardization rules:
1. Addresses already in the 40001-49999 range (holding) or 30001-39999 range (input) are kept as written.
2. Raw offsets (0-9998) for holding registers: add 40000.
3. Zero-based protocol addresses explicitly described as such: add 40001.
4. Hexadecimal addresses (0x...): convert to decimal, then add 40000.
When the document states its own convention, follow the document.

Writability:
- Columns or markings like "R/W", "RW", "read/write" mean writable = true.
- "R", "RO", "read only", "read-only" mean writable = false.
- When access is not stated, use writable = false.

Normalize datatypes to the closest value from the list above. Use UINT16 when the type is not stated. Do not invent registers that are not in the text. Do not include duplicate addresses.`

// BuildSystemPrompt returns the extraction instruction block.
func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt frames the assembled document context. Hints and page
// ordering are the assembler's concern; the context arrives complete.
func BuildUserPrompt(docContext string) string {
	return "Extract all Modbus registers from the following documentation:\n\n" + docContext
}
