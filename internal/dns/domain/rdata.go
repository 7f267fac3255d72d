package domain

import "strings"

// RData is the tagged variant over record payloads. Each supported
// (class,type) combination has a concrete shape below; anything else is
// carried opaque as RawData.
type RData interface {
	isRData()
}

// AData holds an IPv4 address in dotted-quad presentation form.
type AData struct {
	Address string
}

// AAAAData holds an IPv6 address as eight colon-separated hex groups.
type AAAAData struct {
	Address string
}

// NameData holds a single domain name payload, shared by NS, CNAME and PTR.
type NameData struct {
	Target string
}

// MXData holds a mail exchange preference and host.
type MXData struct {
	Preference uint16
	Exchange   string
}

// SRVData holds a service locator target. The target name is never
// compressed on the wire (RFC 2782).
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

// SOAData holds a start-of-authority payload. RName is kept in its
// presentation form with the first label separator shown as "@"
// (e.g. "hostmaster@example.com"); the codec restores the wire dot.
type SOAData struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// TXTData holds one or more character strings.
type TXTData struct {
	Segments []string
}

// Join returns the segments concatenated, the presentation used when a
// record carries exactly one string.
func (t TXTData) Join() string {
	return strings.Join(t.Segments, "")
}

// DSData holds a delegation signer digest.
type DSData struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

// OPTData is the EDNS(0) payload of an OPT pseudo record.
type OPTData struct {
	EDNS
}

// RawData carries the payload of record types the codec does not
// interpret. The encoder refuses to serialize it.
type RawData struct {
	Octets []byte
}

func (AData) isRData()    {}
func (AAAAData) isRData() {}
func (NameData) isRData() {}
func (MXData) isRData()   {}
func (SRVData) isRData()  {}
func (SOAData) isRData()  {}
func (TXTData) isRData()  {}
func (DSData) isRData()   {}
func (OPTData) isRData()  {}
func (RawData) isRData()  {}
