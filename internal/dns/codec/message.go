// Package codec implements the DNS wire format of RFC 1035 with name
// compression, the record payload shapes the server serves, and the
// EDNS(0) OPT pseudo record of RFC 6891. Decode and encode are inverse
// operations: re-encoding a decoded packet reproduces it byte for byte,
// except that the encoder may compress a suffix the original producer
// did not.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// header flag bits, first flags octet
const (
	flagQR = 0x80
	flagAA = 0x04
	flagTC = 0x02
	flagRD = 0x01
)

// header flag bits, second flags octet
const (
	flagRA = 0x80
	flagAD = 0x20
	flagCD = 0x10
)

const headerLen = 12

// Decode parses a complete DNS message. Section counts in the header
// must match the records actually present; compressed names anywhere in
// the message resolve against the full buffer. An OPT record in the
// answer, authority or additional section is decoded (placement is the
// server's concern), and its extended-RCODE byte widens the header
// response code. A question entry of type OPT is read like any other
// question: no EDNS payload, and its class must be a registered one.
func Decode(data []byte) (domain.Message, error) {
	if len(data) < headerLen {
		return domain.Message{}, fmt.Errorf("%w: header", ErrUnexpectedEnd)
	}

	f1, f2 := data[2], data[3]
	opcode := domain.Opcode(f1 >> 3 & 0x0F)
	if !opcode.IsValid() {
		opcode = domain.OpcodeUnknown
	}

	msg := domain.Message{
		ID:                 binary.BigEndian.Uint16(data[0:2]),
		Response:           f1&flagQR != 0,
		Opcode:             opcode,
		Authoritative:      f1&flagAA != 0,
		Truncated:          f1&flagTC != 0,
		RecursionDesired:   f1&flagRD != 0,
		RecursionAvailable: f2&flagRA != 0,
		Authenticated:      f2&flagAD != 0,
		CheckingDisabled:   f2&flagCD != 0,
	}

	var counts [4]uint16
	for i := range counts {
		counts[i] = binary.BigEndian.Uint16(data[4+i*2 : 6+i*2])
	}

	offset := headerLen
	extended := uint8(0)
	sections := make([][]domain.ResourceRecord, 4)
	for si := range counts {
		for i := 0; i < int(counts[si]); i++ {
			rr, next, err := decodeRecord(data, offset, si == 0)
			if err != nil {
				return domain.Message{}, fmt.Errorf("section %d record %d: %w", si, i, err)
			}
			if edns := rr.EDNS(); edns != nil {
				extended = edns.ExtendedRCode
			}
			sections[si] = append(sections[si], rr)
			offset = next
		}
	}

	msg.RCode = domain.RCode(uint16(extended)<<4 | uint16(f2&0x0F))
	msg.Question = sections[0]
	msg.Answer = sections[1]
	msg.Authority = sections[2]
	msg.Additional = sections[3]
	return msg, nil
}

// decodeRecord reads one record starting at off and returns it together
// with the offset of the next record.
func decodeRecord(data []byte, off int, question bool) (domain.ResourceRecord, int, error) {
	name, consumed, err := decodeName(data, off)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	off += consumed

	if off+4 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record fixed fields", ErrUnexpectedEnd)
	}
	typeCode := domain.RRType(binary.BigEndian.Uint16(data[off : off+2]))
	classCode := binary.BigEndian.Uint16(data[off+2 : off+4])
	off += 4

	if question {
		if !domain.RRClass(classCode).IsValid() {
			return domain.ResourceRecord{}, 0, fmt.Errorf("%w: %d", ErrUnknownClass, classCode)
		}
		return domain.ResourceRecord{Name: name, Type: typeCode, Class: domain.RRClass(classCode)}, off, nil
	}

	if off+6 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record fixed fields", ErrUnexpectedEnd)
	}
	ttl := binary.BigEndian.Uint32(data[off : off+4])
	rdlen := int(binary.BigEndian.Uint16(data[off+4 : off+6]))
	off += 6

	if off+rdlen > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata", ErrUnexpectedEnd)
	}

	if typeCode == domain.RRTypeOPT {
		// the OPT fixed fields are a pseudo header: class carries the
		// UDP size, the TTL packs extended RCODE, version and flags
		if name != "" {
			return domain.ResourceRecord{}, 0, fmt.Errorf("%w: OPT owner name not empty", ErrMalformedEDNS)
		}
		opt, err := decodeOPTData(classCode, ttl, data[off:off+rdlen])
		if err != nil {
			return domain.ResourceRecord{}, 0, err
		}
		return domain.ResourceRecord{Type: domain.RRTypeOPT, Data: opt}, off + rdlen, nil
	}

	class := domain.RRClass(classCode)
	if !class.IsValid() {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: %d", ErrUnknownClass, classCode)
	}

	rdata, err := decodeRData(data, off, rdlen, class, typeCode)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	return domain.ResourceRecord{Name: name, Type: typeCode, Class: class, TTL: ttl, Data: rdata}, off + rdlen, nil
}

// Encode serializes a message into wire format. Records are written in
// section order into one buffer behind the header so compression offsets
// are final; the section counts are patched into the header afterwards.
func Encode(msg domain.Message) ([]byte, error) {
	if !msg.Opcode.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOpcode, msg.Opcode)
	}
	if !msg.RCode.IsValid() {
		return nil, fmt.Errorf("cannot encode unassigned rcode %d", msg.RCode)
	}
	if msg.RCode.IsExtended() && msg.CountOPT() == 0 {
		return nil, fmt.Errorf("%w: rcode %s", ErrExtendedRCode, msg.RCode)
	}

	buf := make([]byte, headerLen)
	comp := newCompressor()
	var counts [4]int
	var err error

	for si, section := range msg.Sections() {
		for _, rr := range section {
			buf, err = appendRecord(buf, comp, rr, si == 0, msg.RCode)
			if err != nil {
				return nil, fmt.Errorf("section %d record %d: %w", si, counts[si], err)
			}
			counts[si]++
		}
	}

	binary.BigEndian.PutUint16(buf[0:2], msg.ID)

	f1 := byte(msg.Opcode) << 3
	if msg.Response {
		f1 |= flagQR
	}
	if msg.Authoritative {
		f1 |= flagAA
	}
	if msg.Truncated {
		f1 |= flagTC
	}
	if msg.RecursionDesired {
		f1 |= flagRD
	}
	f2 := msg.RCode.Header()
	if msg.RecursionAvailable {
		f2 |= flagRA
	}
	if msg.Authenticated {
		f2 |= flagAD
	}
	if msg.CheckingDisabled {
		f2 |= flagCD
	}
	buf[2], buf[3] = f1, f2

	for i, n := range counts {
		if n > 0xFFFF {
			return nil, fmt.Errorf("section %d holds %d records (max 65535)", i, n)
		}
		binary.BigEndian.PutUint16(buf[4+i*2:6+i*2], uint16(n))
	}

	return buf, nil
}

// appendRecord serializes one record onto buf. The buffer already
// contains the header, so len(buf) is the absolute offset of the owner
// name for compression accounting.
func appendRecord(buf []byte, comp *compressor, rr domain.ResourceRecord, question bool, rcode domain.RCode) ([]byte, error) {
	if rr.IsOPT() {
		return appendOPTRecord(buf, rr, rcode)
	}

	buf, err := comp.appendName(buf, rr.Name, len(buf), true)
	if err != nil {
		return nil, err
	}

	if !rr.Type.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rr.Type)
	}
	if !rr.Class.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownClass, rr.Class)
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Type))
	buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Class))
	if question {
		return buf, nil
	}

	buf = binary.BigEndian.AppendUint32(buf, rr.TTL)

	// the rdata starts two octets further on, behind its length field
	rdata, err := encodeRData(comp, len(buf)+2, rr)
	if err != nil {
		return nil, err
	}
	if len(rdata) > 0xFFFF {
		return nil, fmt.Errorf("rdata is %d octets (max 65535)", len(rdata))
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(rdata)))
	return append(buf, rdata...), nil
}

// appendOPTRecord serializes an OPT pseudo record. The owner name must
// be empty and the extended-RCODE byte mirrors the message rcode.
func appendOPTRecord(buf []byte, rr domain.ResourceRecord, rcode domain.RCode) ([]byte, error) {
	if rr.Name != "" {
		return nil, fmt.Errorf("%w: OPT owner name not empty", ErrMalformedEDNS)
	}
	opt, ok := rr.Data.(domain.OPTData)
	if !ok {
		return nil, fmt.Errorf("%w: OPT record without EDNS payload", ErrMalformedEDNS)
	}

	buf = append(buf, 0) // root owner name
	buf = binary.BigEndian.AppendUint16(buf, uint16(domain.RRTypeOPT))

	class, ttl := encodeOPTFixed(opt, rcode)
	buf = binary.BigEndian.AppendUint16(buf, class)
	buf = binary.BigEndian.AppendUint32(buf, ttl)

	rdata, err := encodeOPTData(opt)
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(rdata)))
	return append(buf, rdata...), nil
}
