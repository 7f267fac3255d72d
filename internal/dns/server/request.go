package server

import "github.com/cepharum/dnsd/internal/dns/domain"

// Request carries one decoded query and the transport it arrived on.
type Request struct {
	Msg  domain.Message
	Conn ServerSocket
}

// EDNS returns the request's EDNS payload, or nil if the query carried
// no OPT record.
func (r *Request) EDNS() *domain.EDNS {
	opt, _ := r.Msg.OPT()
	if opt == nil {
		return nil
	}
	return opt.EDNS()
}
