package codec

import (
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeTXTData decodes a TXT payload: one or more length-prefixed
// character strings filling the rdata exactly.
func decodeTXTData(b []byte) (domain.TXTData, error) {
	var segments []string
	for i := 0; i < len(b); {
		length := int(b[i])
		i++
		if i+length > len(b) {
			return domain.TXTData{}, fmt.Errorf("%w: TXT segment overruns rdata", ErrBadRData)
		}
		segments = append(segments, string(b[i:i+length]))
		i += length
	}
	if len(segments) == 0 {
		return domain.TXTData{}, fmt.Errorf("%w: TXT payload empty", ErrBadRData)
	}
	return domain.TXTData{Segments: segments}, nil
}

// encodeTXTData encodes TXT segments as length-prefixed strings.
func encodeTXTData(d domain.TXTData) ([]byte, error) {
	if len(d.Segments) == 0 {
		return nil, fmt.Errorf("%w: TXT record needs at least one segment", ErrBadRData)
	}
	var buf []byte
	for _, segment := range d.Segments {
		if len(segment) > 255 {
			return nil, fmt.Errorf("%w: TXT segment is %d octets", ErrBadRData, len(segment))
		}
		buf = append(buf, byte(len(segment)))
		buf = append(buf, segment...)
	}
	return buf, nil
}
