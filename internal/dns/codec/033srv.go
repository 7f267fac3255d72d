package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeSRVData decodes an SRV payload: three 16-bit fields followed by
// the target name.
func decodeSRVData(msg []byte, off, length int) (domain.SRVData, error) {
	if length < 7 {
		return domain.SRVData{}, fmt.Errorf("%w: SRV payload is %d octets", ErrBadRData, length)
	}
	target, consumed, err := decodeName(msg, off+6)
	if err != nil {
		return domain.SRVData{}, fmt.Errorf("SRV target: %w", err)
	}
	if 6+consumed > length {
		return domain.SRVData{}, fmt.Errorf("%w: SRV target exceeds rdata", ErrBadRData)
	}
	return domain.SRVData{
		Priority: binary.BigEndian.Uint16(msg[off : off+2]),
		Weight:   binary.BigEndian.Uint16(msg[off+2 : off+4]),
		Port:     binary.BigEndian.Uint16(msg[off+4 : off+6]),
		Target:   target,
	}, nil
}

// encodeSRVData encodes an SRV payload. RFC 2782 forbids compressing the
// target, so it is always written literally.
func encodeSRVData(comp *compressor, abs int, d domain.SRVData) ([]byte, error) {
	buf := make([]byte, 6)
	binary.BigEndian.PutUint16(buf[0:], d.Priority)
	binary.BigEndian.PutUint16(buf[2:], d.Weight)
	binary.BigEndian.PutUint16(buf[4:], d.Port)
	return comp.appendName(buf, d.Target, abs+6, false)
}
