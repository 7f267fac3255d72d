package codec

import "github.com/cepharum/dnsd/internal/dns/domain"

// decodePTRData decodes a PTR payload: one compressed domain name.
func decodePTRData(msg []byte, off, length int) (domain.NameData, error) {
	return decodeNameData(msg, off, length, "PTR")
}

// encodePTRData encodes a PTR target, compression allowed.
func encodePTRData(comp *compressor, abs int, d domain.NameData) ([]byte, error) {
	return comp.appendName(nil, d.Target, abs, true)
}
