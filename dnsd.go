// Package dnsd is a DNS message codec and a minimal authoritative DNS
// server façade. The codec round-trips RFC 1035 wire-format messages
// with name compression and RFC 6891 EDNS(0) OPT records; the server
// accepts queries over UDP and length-prefixed TCP and dispatches them
// to a handler paired with a pre-built response.
package dnsd

import (
	"github.com/cepharum/dnsd/internal/dns/codec"
	"github.com/cepharum/dnsd/internal/dns/domain"
	"github.com/cepharum/dnsd/internal/dns/server"
)

// Message model, re-exported from the domain package.
type (
	Message        = domain.Message
	ResourceRecord = domain.ResourceRecord
	RRType         = domain.RRType
	RRClass        = domain.RRClass
	RCode          = domain.RCode
	Opcode         = domain.Opcode
	RData          = domain.RData
	EDNS           = domain.EDNS
	EDNSOption     = domain.EDNSOption
	Zone           = domain.Zone
)

// Record payload variants, re-exported from the domain package.
type (
	AData    = domain.AData
	AAAAData = domain.AAAAData
	NameData = domain.NameData
	MXData   = domain.MXData
	SRVData  = domain.SRVData
	SOAData  = domain.SOAData
	TXTData  = domain.TXTData
	DSData   = domain.DSData
	OPTData  = domain.OPTData
	RawData  = domain.RawData
)

// Server façade, re-exported from the server package.
type (
	Server       = server.Server
	Handler      = server.Handler
	Options      = server.Options
	Request      = server.Request
	Response     = server.Response
	ServerSocket = server.ServerSocket
	Event        = server.Event
	EventKind    = server.EventKind
)

// Decode parses a complete DNS message from wire format.
func Decode(data []byte) (Message, error) {
	return codec.Decode(data)
}

// Encode serializes a DNS message into wire format.
func Encode(msg Message) ([]byte, error) {
	return codec.Encode(msg)
}

// CreateServer constructs a server dispatching queries to handler.
func CreateServer(handler Handler, opts Options) *Server {
	return server.NewServer(handler, opts)
}
