package server

import (
	"fmt"

	"github.com/cepharum/dnsd/internal/dns/codec"
	"github.com/cepharum/dnsd/internal/dns/domain"
)

// Response accumulates the answer to one request and transmits it on
// End. It starts as the request's reply skeleton: same ID, question
// echoed, RD copied.
type Response struct {
	Msg    domain.Message
	server *Server
	conn   ServerSocket
	ended  bool
}

// Reset adopts msg as a fresh response over the same connection,
// discarding everything accumulated so far.
func (r *Response) Reset(msg domain.Message) *Response {
	r.Msg = msg
	return r
}

// EndA answers the single-question IN A case: when the sole question is
// an IN A query and no answer exists yet, an A record for the question
// name carrying address is pushed before ending.
func (r *Response) EndA(address string) error {
	if len(r.Msg.Question) == 1 && len(r.Msg.Answer) == 0 {
		q := r.Msg.Question[0]
		if q.Type == domain.RRTypeA && q.Class == domain.RRClassIN {
			r.Msg.Answer = append(r.Msg.Answer, domain.ResourceRecord{
				Name:  q.Name,
				Type:  domain.RRTypeA,
				Class: domain.RRClassIN,
				Data:  domain.AData{Address: address},
			})
		}
	}
	return r.End()
}

// End appends any given answers and transmits the response. For each
// question covered by a registered zone: an IN SOA question for the
// apex with no answers is answered with the zone's SOA, and a response
// still empty of answers gets the SOA pushed into authority. Records
// without a class default to IN; records without a TTL are raised to
// the zone SOA minimum, or the server's default TTL, floored at 1.
// A response with neither answers nor authority records transmits
// nothing at all; its TCP connection is closed without a payload.
func (r *Response) End(answers ...domain.ResourceRecord) error {
	if r.ended {
		return fmt.Errorf("response already ended")
	}
	r.ended = true

	r.Msg.Answer = append(r.Msg.Answer, answers...)
	r.Msg.RecursionAvailable = false
	r.Msg.Authoritative = true

	var covering *domain.Zone
	for _, q := range r.Msg.Question {
		zone, ok := r.server.findZoneForName(q.Name)
		if !ok {
			continue
		}
		if covering == nil {
			z := zone
			covering = &z
		}
		if q.Type == domain.RRTypeSOA && q.Class == domain.RRClassIN &&
			q.Name == zone.Name && len(r.Msg.Answer) == 0 {
			r.Msg.Answer = append(r.Msg.Answer, zone.SOA)
		}
		if len(r.Msg.Answer) == 0 && len(r.Msg.Authority) == 0 {
			r.Msg.Authority = append(r.Msg.Authority, zone.SOA)
		}
	}

	minTTL := r.server.opts.TTL
	if covering != nil {
		minTTL = covering.SOAData().Minimum
	}
	if minTTL < 1 {
		minTTL = 1
	}
	for _, section := range []*[]domain.ResourceRecord{&r.Msg.Answer, &r.Msg.Authority, &r.Msg.Additional} {
		for i := range *section {
			rr := &(*section)[i]
			if rr.IsOPT() {
				continue
			}
			if rr.Class == 0 {
				rr.Class = domain.RRClassIN
			}
			if rr.TTL == 0 {
				rr.TTL = minTTL
			}
		}
	}

	if len(r.Msg.Answer) == 0 && len(r.Msg.Authority) == 0 {
		// not authoritative for this question: stay silent
		return r.conn.Close()
	}

	data, err := codec.Encode(r.Msg)
	if err != nil {
		r.server.emit(Event{Kind: EventError, Err: err})
		return err
	}
	if err := r.conn.Send(data); err != nil {
		r.server.emit(Event{Kind: EventError, Err: err})
		return err
	}
	return nil
}
