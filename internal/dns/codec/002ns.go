package codec

import (
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeNSData decodes an NS payload: a single, possibly compressed
// domain name resolved against the whole message.
func decodeNSData(msg []byte, off, length int) (domain.NameData, error) {
	return decodeNameData(msg, off, length, "NS")
}

// encodeNSData encodes an NS host name, compression allowed.
func encodeNSData(comp *compressor, abs int, d domain.NameData) ([]byte, error) {
	return comp.appendName(nil, d.Target, abs, true)
}

// decodeNameData is the shared decoder for single-name payloads
// (NS, CNAME, PTR).
func decodeNameData(msg []byte, off, length int, kind string) (domain.NameData, error) {
	name, consumed, err := decodeName(msg, off)
	if err != nil {
		return domain.NameData{}, fmt.Errorf("%s target: %w", kind, err)
	}
	if consumed > length {
		return domain.NameData{}, fmt.Errorf("%w: %s name exceeds rdata", ErrBadRData, kind)
	}
	return domain.NameData{Target: name}, nil
}
