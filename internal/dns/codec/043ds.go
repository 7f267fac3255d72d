package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeDSData decodes a DS payload: key tag, algorithm, digest type and
// the digest itself.
func decodeDSData(b []byte) (domain.DSData, error) {
	if len(b) < 4 {
		return domain.DSData{}, fmt.Errorf("%w: DS payload is %d octets", ErrBadRData, len(b))
	}
	digest := make([]byte, len(b)-4)
	copy(digest, b[4:])
	return domain.DSData{
		KeyTag:     binary.BigEndian.Uint16(b[0:2]),
		Algorithm:  b[2],
		DigestType: b[3],
		Digest:     digest,
	}, nil
}

// encodeDSData encodes a DS payload.
func encodeDSData(d domain.DSData) ([]byte, error) {
	buf := make([]byte, 4, 4+len(d.Digest))
	binary.BigEndian.PutUint16(buf[0:], d.KeyTag)
	buf[2] = d.Algorithm
	buf[3] = d.DigestType
	return append(buf, d.Digest...), nil
}
