package domain

import "fmt"

// Message represents a complete DNS message: the header fields and the
// four record sections of RFC 1035 §4.1. The message owns its sections;
// records hold no back references.
type Message struct {
	ID                 uint16
	Response           bool // QR bit
	Opcode             Opcode
	Authoritative      bool // AA
	Truncated          bool // TC
	RecursionDesired   bool // RD
	RecursionAvailable bool // RA
	Authenticated      bool // AD
	CheckingDisabled   bool // CD
	RCode              RCode

	Question   []ResourceRecord
	Answer     []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// NewQuery constructs a request message with a single question.
func NewQuery(id uint16, question ResourceRecord) Message {
	return Message{
		ID:       id,
		Opcode:   OpcodeQuery,
		Question: []ResourceRecord{question},
	}
}

// Reply constructs the response skeleton for this message: same ID,
// question echoed, RD copied, QR set.
func (m Message) Reply() Message {
	return Message{
		ID:               m.ID,
		Response:         true,
		Opcode:           m.Opcode,
		RecursionDesired: m.RecursionDesired,
		Question:         append([]ResourceRecord(nil), m.Question...),
	}
}

// OPT returns the first OPT pseudo record found in the message together
// with the index of its section (0=question .. 3=additional), or nil.
func (m Message) OPT() (*ResourceRecord, int) {
	for si, section := range m.Sections() {
		for ri := range section {
			if section[ri].IsOPT() {
				return &section[ri], si
			}
		}
	}
	return nil, -1
}

// CountOPT returns the number of OPT pseudo records across all sections.
func (m Message) CountOPT() int {
	n := 0
	for _, section := range m.Sections() {
		for _, rr := range section {
			if rr.IsOPT() {
				n++
			}
		}
	}
	return n
}

// Sections returns the four record sections in wire order.
func (m Message) Sections() [4][]ResourceRecord {
	return [4][]ResourceRecord{m.Question, m.Answer, m.Authority, m.Additional}
}

// Validate checks whether the header fields are encodable.
func (m Message) Validate() error {
	if !m.Opcode.IsValid() {
		return fmt.Errorf("unknown opcode: %d", m.Opcode)
	}
	if !m.RCode.IsValid() {
		return fmt.Errorf("unknown rcode: %d", m.RCode)
	}
	return nil
}
