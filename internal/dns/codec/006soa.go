package codec

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// decodeSOAData decodes an SOA payload. Both names may be compressed
// against the whole message. The rname is presented with its first dot
// swapped to "@", mirroring the mailbox it encodes; the encoder reverses
// the swap exactly.
func decodeSOAData(msg []byte, off, length int) (domain.SOAData, error) {
	end := off + length
	mname, consumed, err := decodeName(msg, off)
	if err != nil {
		return domain.SOAData{}, fmt.Errorf("SOA mname: %w", err)
	}
	pos := off + consumed

	rname, consumed, err := decodeName(msg, pos)
	if err != nil {
		return domain.SOAData{}, fmt.Errorf("SOA rname: %w", err)
	}
	pos += consumed

	if pos+20 > end || pos+20 > len(msg) {
		return domain.SOAData{}, fmt.Errorf("%w: SOA integer fields truncated", ErrBadRData)
	}
	var u32 [5]uint32
	for i := range u32 {
		u32[i] = binary.BigEndian.Uint32(msg[pos+i*4 : pos+(i+1)*4])
	}

	return domain.SOAData{
		MName:   mname,
		RName:   strings.Replace(rname, ".", "@", 1),
		Serial:  u32[0],
		Refresh: u32[1],
		Retry:   u32[2],
		Expire:  u32[3],
		Minimum: u32[4],
	}, nil
}

// encodeSOAData encodes an SOA payload, compression allowed for both
// names. abs is the absolute offset the rdata begins at.
func encodeSOAData(comp *compressor, abs int, d domain.SOAData) ([]byte, error) {
	buf, err := comp.appendName(nil, d.MName, abs, true)
	if err != nil {
		return nil, fmt.Errorf("SOA mname: %w", err)
	}

	// undo the presentation swap: the mailbox "@" is a label dot on the wire
	rname := strings.Replace(d.RName, "@", ".", 1)
	buf, err = comp.appendName(buf, rname, abs+len(buf), true)
	if err != nil {
		return nil, fmt.Errorf("SOA rname: %w", err)
	}

	tail := make([]byte, 20)
	binary.BigEndian.PutUint32(tail[0:], d.Serial)
	binary.BigEndian.PutUint32(tail[4:], d.Refresh)
	binary.BigEndian.PutUint32(tail[8:], d.Retry)
	binary.BigEndian.PutUint32(tail[12:], d.Expire)
	binary.BigEndian.PutUint32(tail[16:], d.Minimum)
	return append(buf, tail...), nil
}
