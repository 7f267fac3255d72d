package codec

import (
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeRData interprets a record payload according to its (class,type).
// Names inside the payload are decompressed against the full message, so
// the payload is addressed by offset and length rather than sliced out.
// Combinations without a typed shape decode as opaque octets.
func decodeRData(msg []byte, off, length int, class domain.RRClass, rrtype domain.RRType) (domain.RData, error) {
	if class != domain.RRClassIN {
		return rawData(msg, off, length), nil
	}
	switch rrtype {
	case domain.RRTypeA:
		return decodeAData(msg[off : off+length])
	case domain.RRTypeNS:
		return decodeNSData(msg, off, length)
	case domain.RRTypeCNAME:
		return decodeCNAMEData(msg, off, length)
	case domain.RRTypeSOA:
		return decodeSOAData(msg, off, length)
	case domain.RRTypePTR:
		return decodePTRData(msg, off, length)
	case domain.RRTypeMX:
		return decodeMXData(msg, off, length)
	case domain.RRTypeTXT:
		return decodeTXTData(msg[off : off+length])
	case domain.RRTypeAAAA:
		return decodeAAAAData(msg[off : off+length])
	case domain.RRTypeSRV:
		return decodeSRVData(msg, off, length)
	case domain.RRTypeDS:
		return decodeDSData(msg[off : off+length])
	default:
		return rawData(msg, off, length), nil
	}
}

func rawData(msg []byte, off, length int) domain.RawData {
	octets := make([]byte, length)
	copy(octets, msg[off:off+length])
	return domain.RawData{Octets: octets}
}

// encodeRData serializes a record payload. abs is the absolute offset
// the rdata will begin at in the final message, so compressed names
// inside the payload record correct pointer targets. Payload shapes the
// codec does not know how to serialize are rejected.
func encodeRData(comp *compressor, abs int, rr domain.ResourceRecord) ([]byte, error) {
	switch rr.Type {
	case domain.RRTypeA:
		if d, ok := rr.Data.(domain.AData); ok {
			return encodeAData(d)
		}
	case domain.RRTypeNS:
		if d, ok := rr.Data.(domain.NameData); ok {
			return encodeNSData(comp, abs, d)
		}
	case domain.RRTypeCNAME:
		if d, ok := rr.Data.(domain.NameData); ok {
			return encodeCNAMEData(comp, abs, d)
		}
	case domain.RRTypeSOA:
		if d, ok := rr.Data.(domain.SOAData); ok {
			return encodeSOAData(comp, abs, d)
		}
	case domain.RRTypePTR:
		if d, ok := rr.Data.(domain.NameData); ok {
			return encodePTRData(comp, abs, d)
		}
	case domain.RRTypeMX:
		if d, ok := rr.Data.(domain.MXData); ok {
			return encodeMXData(comp, abs, d)
		}
	case domain.RRTypeTXT:
		if d, ok := rr.Data.(domain.TXTData); ok {
			return encodeTXTData(d)
		}
	case domain.RRTypeAAAA:
		if d, ok := rr.Data.(domain.AAAAData); ok {
			return encodeAAAAData(d)
		}
	case domain.RRTypeSRV:
		if d, ok := rr.Data.(domain.SRVData); ok {
			return encodeSRVData(comp, abs, d)
		}
	case domain.RRTypeDS:
		if d, ok := rr.Data.(domain.DSData); ok {
			return encodeDSData(d)
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedType, rr.Class, rr.Type)
}
