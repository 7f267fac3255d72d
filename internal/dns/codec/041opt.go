package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeOPTData reinterprets the fixed record fields of an OPT pseudo
// record (RFC 6891 §6.1.2): the class field carries the advertised UDP
// payload size and the TTL packs extended RCODE, version and flags. The
// rdata is a sequence of (code, length, data) TLV options.
func decodeOPTData(class uint16, ttl uint32, rdata []byte) (domain.OPTData, error) {
	flags := uint16(ttl & 0xFFFF)
	edns := domain.EDNS{
		UDPSize:       class,
		ExtendedRCode: uint8(ttl >> 24),
		Version:       uint8(ttl >> 16),
		DO:            flags&domain.EDNSFlagDO != 0,
		Flags:         flags &^ domain.EDNSFlagDO,
	}

	for i := 0; i < len(rdata); {
		if i+4 > len(rdata) {
			return domain.OPTData{}, fmt.Errorf("%w: OPT option header truncated", ErrMalformedEDNS)
		}
		code := binary.BigEndian.Uint16(rdata[i : i+2])
		length := int(binary.BigEndian.Uint16(rdata[i+2 : i+4]))
		i += 4
		if i+length > len(rdata) {
			return domain.OPTData{}, fmt.Errorf("%w: OPT option data truncated", ErrMalformedEDNS)
		}
		data := make([]byte, length)
		copy(data, rdata[i:i+length])
		edns.Options = append(edns.Options, domain.EDNSOption{Code: code, Data: data})
		i += length
	}

	return domain.OPTData{EDNS: edns}, nil
}

// encodeOPTFixed packs the class and TTL fields of an OPT record. The
// extended RCODE byte comes from the message response code, not from the
// decoded payload, so the header nibble and the OPT byte always agree.
func encodeOPTFixed(d domain.OPTData, rcode domain.RCode) (class uint16, ttl uint32) {
	flags := d.Flags &^ domain.EDNSFlagDO
	if d.DO {
		flags |= domain.EDNSFlagDO
	}
	ttl = uint32(rcode.Extended())<<24 | uint32(d.Version)<<16 | uint32(flags)
	return d.UDPSize, ttl
}

// encodeOPTData encodes the TLV option list of an OPT record.
func encodeOPTData(d domain.OPTData) ([]byte, error) {
	var buf []byte
	for _, opt := range d.Options {
		if len(opt.Data) > 0xFFFF {
			return nil, fmt.Errorf("%w: OPT option %d data too long", ErrMalformedEDNS, opt.Code)
		}
		header := make([]byte, 4)
		binary.BigEndian.PutUint16(header[0:], opt.Code)
		binary.BigEndian.PutUint16(header[2:], uint16(len(opt.Data)))
		buf = append(buf, header...)
		buf = append(buf, opt.Data...)
	}
	return buf, nil
}
