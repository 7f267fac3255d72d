package codec

import "github.com/cepharum/dnsd/internal/dns/domain"

// decodeCNAMEData decodes a CNAME payload: one compressed domain name.
func decodeCNAMEData(msg []byte, off, length int) (domain.NameData, error) {
	return decodeNameData(msg, off, length, "CNAME")
}

// encodeCNAMEData encodes a CNAME target, compression allowed.
func encodeCNAMEData(comp *compressor, abs int, d domain.NameData) ([]byte, error) {
	return comp.appendName(nil, d.Target, abs, true)
}
