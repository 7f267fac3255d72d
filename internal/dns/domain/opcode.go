package domain

import "fmt"

// Opcode represents the 4-bit operation code of a DNS message header.
type Opcode uint8

// DNS opcode constants. Value 3 is reserved by IANA and intentionally
// absent; messages carrying it decode to OpcodeUnknown.
const (
	OpcodeQuery  Opcode = 0 // QUERY - Standard query
	OpcodeIQuery Opcode = 1 // IQUERY - Inverse query (obsolete)
	OpcodeStatus Opcode = 2 // STATUS - Server status request
	OpcodeNotify Opcode = 4 // NOTIFY - Zone change notification
	OpcodeUpdate Opcode = 5 // UPDATE - Dynamic update

	// OpcodeUnknown is the sentinel decoded for unassigned opcode values.
	// The encoder refuses to serialize it.
	OpcodeUnknown Opcode = 15
)

var opcodeNames = map[Opcode]string{
	OpcodeQuery:  "QUERY",
	OpcodeIQuery: "IQUERY",
	OpcodeStatus: "STATUS",
	OpcodeNotify: "NOTIFY",
	OpcodeUpdate: "UPDATE",
}

var opcodeValues = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for code, name := range opcodeNames {
		m[name] = code
	}
	return m
}()

// IsValid returns true if the Opcode is one of the assigned operation codes.
func (o Opcode) IsValid() bool {
	_, ok := opcodeNames[o]
	return ok
}

// String returns the textual representation of the Opcode.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OPCODE%d", uint8(o))
}

// OpcodeFromString converts an opcode label to its numeric value.
// Unknown labels yield OpcodeUnknown.
func OpcodeFromString(s string) Opcode {
	if code, ok := opcodeValues[s]; ok {
		return code
	}
	return OpcodeUnknown
}
