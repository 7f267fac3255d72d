package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeMXData decodes an MX payload: a 16-bit preference followed by a
// possibly compressed exchange name.
func decodeMXData(msg []byte, off, length int) (domain.MXData, error) {
	if length < 3 {
		return domain.MXData{}, fmt.Errorf("%w: MX payload is %d octets", ErrBadRData, length)
	}
	pref := binary.BigEndian.Uint16(msg[off : off+2])
	exchange, consumed, err := decodeName(msg, off+2)
	if err != nil {
		return domain.MXData{}, fmt.Errorf("MX exchange: %w", err)
	}
	if 2+consumed > length {
		return domain.MXData{}, fmt.Errorf("%w: MX exchange exceeds rdata", ErrBadRData)
	}
	return domain.MXData{Preference: pref, Exchange: exchange}, nil
}

// encodeMXData encodes an MX payload; the exchange name sits two octets
// into the rdata and may be compressed.
func encodeMXData(comp *compressor, abs int, d domain.MXData) ([]byte, error) {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, d.Preference)
	return comp.appendName(buf, d.Exchange, abs+2, true)
}
