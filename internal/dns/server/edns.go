package server

import "github.com/cepharum/dnsd/internal/dns/domain"

// additionalSection is the index of the additional section in wire order.
const additionalSection = 3

// screenEDNS validates EDNS framing before the handler runs. A message
// with more than one OPT record, or an OPT record outside the additional
// section, earns an immediate FORMERR; an OPT advertising an EDNS
// version above zero earns BADVERS. Either reply echoes the requester's
// advertised UDP size, clamped to at least 512. The boolean reports
// whether the returned reply must be sent instead of dispatching.
func (s *Server) screenEDNS(msg domain.Message) (domain.Message, bool) {
	opt, section := msg.OPT()
	if opt == nil {
		return domain.Message{}, false
	}

	// question-section OPT entries carry no payload at all
	edns := opt.EDNS()
	if edns == nil {
		return ednsReply(msg, domain.RCodeFormErr, domain.MinUDPSize), true
	}

	if msg.CountOPT() > 1 || section != additionalSection {
		return ednsReply(msg, domain.RCodeFormErr, edns.UDPSize), true
	}
	if edns.Version > 0 {
		return ednsReply(msg, domain.RCodeBadVers, edns.UDPSize), true
	}
	return domain.Message{}, false
}

// ednsReply builds a handler-free response carrying an OPT record that
// echoes the requester's UDP size.
func ednsReply(msg domain.Message, rcode domain.RCode, udpSize uint16) domain.Message {
	reply := msg.Reply()
	reply.RCode = rcode
	reply.Additional = append(reply.Additional, domain.ResourceRecord{
		Type: domain.RRTypeOPT,
		Data: domain.OPTData{EDNS: domain.NewEDNS(udpSize)},
	})
	return reply
}
