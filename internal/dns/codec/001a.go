package codec

import (
	"fmt"
	"net"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeAData decodes an A payload: exactly four octets, presented as a
// dotted quad.
func decodeAData(b []byte) (domain.AData, error) {
	if len(b) != 4 {
		return domain.AData{}, fmt.Errorf("%w: A payload is %d octets, want 4", ErrBadRData, len(b))
	}
	return domain.AData{Address: net.IP(b).String()}, nil
}

// encodeAData encodes a dotted-quad address into four octets.
func encodeAData(d domain.AData) ([]byte, error) {
	ip := net.ParseIP(d.Address)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("%w: not an IPv4 address: %q", ErrBadRData, d.Address)
	}
	return ip.To4(), nil
}
