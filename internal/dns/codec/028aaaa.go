package codec

import (
	"encoding/binary"
	"fmt"
	"net"
	"strings"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeAAAAData decodes an AAAA payload: sixteen octets presented as
// eight colon-separated hex groups, without zero compression.
func decodeAAAAData(b []byte) (domain.AAAAData, error) {
	if len(b) != 16 {
		return domain.AAAAData{}, fmt.Errorf("%w: AAAA payload is %d octets, want 16", ErrBadRData, len(b))
	}
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%x", binary.BigEndian.Uint16(b[i*2:i*2+2]))
	}
	return domain.AAAAData{Address: strings.Join(groups, ":")}, nil
}

// encodeAAAAData encodes an IPv6 address into sixteen octets. Both the
// expanded eight-group form and the "::" shorthand are accepted.
func encodeAAAAData(d domain.AAAAData) ([]byte, error) {
	ip := net.ParseIP(d.Address)
	if ip == nil || ip.To16() == nil || ip.To4() != nil {
		return nil, fmt.Errorf("%w: not an IPv6 address: %q", ErrBadRData, d.Address)
	}
	return ip.To16(), nil
}
