package domain

// EDNSFlagDO is bit 15 of the OPT flags word (DNSSEC OK, RFC 3225).
const EDNSFlagDO uint16 = 0x8000

// MinUDPSize is the smallest UDP payload size an OPT record may advertise.
const MinUDPSize uint16 = 512

// EDNS holds the fields of an RFC 6891 OPT pseudo record. The OPT class
// field on the wire IS the advertised UDP payload size and is preserved
// here as UDPSize, never reinterpreted as a record class.
type EDNS struct {
	UDPSize       uint16
	ExtendedRCode uint8
	Version       uint8
	DO            bool
	Flags         uint16 // remaining 15 flag bits, DO masked out
	Options       []EDNSOption
}

// EDNSOption is one TLV option inside an OPT record's RDATA.
type EDNSOption struct {
	Code uint16
	Data []byte
}

// NewEDNS returns an EDNS payload advertising the given UDP size,
// clamped up to MinUDPSize.
func NewEDNS(udpSize uint16) EDNS {
	if udpSize < MinUDPSize {
		udpSize = MinUDPSize
	}
	return EDNS{UDPSize: udpSize}
}
