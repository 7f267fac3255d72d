// Package server implements a minimal authoritative DNS server over the
// wire codec: UDP datagrams and length-prefixed TCP frames are decoded,
// screened for EDNS conformance, and dispatched to a user handler paired
// with a pre-built response.
package server

import (
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cepharum/dnsd/internal/dns/codec"
	"github.com/cepharum/dnsd/internal/dns/common/clock"
	"github.com/cepharum/dnsd/internal/dns/common/log"
	"github.com/cepharum/dnsd/internal/dns/domain"
)

// DefaultTTL is applied to response records without a TTL when no zone
// SOA minimum covers the question.
const DefaultTTL uint32 = 3600

const (
	defaultLookupCacheSize = 1024
	zoneFilterCapacity     = 1024
	zoneFilterFPRate       = 0.01
)

// Handler processes one decoded query. The response is pre-built with
// the request's ID, question and RD flag; the handler fills it and calls
// one of its End methods.
type Handler func(req *Request, res *Response)

// Options configures a Server.
type Options struct {
	// TTL is the default applied to records without one; zero means
	// DefaultTTL.
	TTL uint32

	// LookupCacheSize bounds the qname->zone memoization; zero picks a
	// default.
	LookupCacheSize int

	Logger log.Logger
	Clock  clock.Clock
}

// Server binds one UDP socket and one TCP listener and serves the
// registered zones through a single handler.
type Server struct {
	handler Handler
	opts    Options
	logger  log.Logger
	clock   clock.Clock

	mu      sync.RWMutex
	zones   map[string]domain.Zone
	filter  *bloom.BloomFilter
	lookups *lru.Cache[string, string]
	udp     *net.UDPConn
	tcp     net.Listener
	closing bool

	events chan Event
	wg     sync.WaitGroup
}

// NewServer constructs a Server dispatching to handler.
func NewServer(handler Handler, opts Options) *Server {
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.LookupCacheSize <= 0 {
		opts.LookupCacheSize = defaultLookupCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	lookups, _ := lru.New[string, string](opts.LookupCacheSize)
	return &Server{
		handler: handler,
		opts:    opts,
		logger:  opts.Logger,
		clock:   opts.Clock,
		zones:   make(map[string]domain.Zone),
		filter:  bloom.NewWithEstimates(zoneFilterCapacity, zoneFilterFPRate),
		lookups: lookups,
		events:  make(chan Event, 16),
	}
}

// Listen binds the UDP socket and the TCP listener on port. An empty
// address binds all interfaces. EventListening is published once both
// sockets are ready.
func (s *Server) Listen(port int, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing {
		return fmt.Errorf("server is closed")
	}
	if s.udp != nil {
		return fmt.Errorf("server is already listening")
	}

	udpConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.ParseIP(address), Port: port})
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket: %w", err)
	}
	tcpLn, err := net.Listen("tcp4", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		_ = udpConn.Close()
		return fmt.Errorf("failed to bind TCP listener: %w", err)
	}

	s.udp = udpConn
	s.tcp = tcpLn

	s.wg.Add(2)
	go s.serveUDP(udpConn)
	go s.serveTCP(tcpLn)

	s.logger.Info(map[string]any{
		"udp": udpConn.LocalAddr().String(),
		"tcp": tcpLn.Addr().String(),
	}, "DNS server listening")
	s.emit(Event{Kind: EventListening})

	return nil
}

// UDPAddr returns the bound UDP address, or nil before Listen.
func (s *Server) UDPAddr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.udp == nil {
		return nil
	}
	return s.udp.LocalAddr()
}

// TCPAddr returns the bound TCP address, or nil before Listen.
func (s *Server) TCPAddr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tcp == nil {
		return nil
	}
	return s.tcp.Addr()
}

// Close releases both sockets. It is idempotent; EventClose is published
// exactly once. In-flight handlers are not cancelled, but responses sent
// after Close fail with a socket error surfaced on the event stream.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return nil
	}
	s.closing = true
	udpConn, tcpLn := s.udp, s.tcp
	s.mu.Unlock()

	if udpConn != nil {
		_ = udpConn.Close()
	}
	if tcpLn != nil {
		_ = tcpLn.Close()
	}

	s.logger.Info(nil, "DNS server closed")
	s.emit(Event{Kind: EventClose})
	return nil
}

// Wait blocks until the UDP loop, the TCP accept loop and the loop of
// every accepted TCP connection have exited. Close does not close
// accepted connections, so Wait also waits for those connections to end.
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) isClosing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closing
}

// dispatch decodes one message and routes it to the handler, running the
// EDNS screen first. Codec failures on incoming data are reported via
// the event stream and do not terminate the server.
func (s *Server) dispatch(data []byte, sock ServerSocket) {
	msg, err := codec.Decode(data)
	if err != nil {
		s.logger.Warn(map[string]any{
			"client": sock.RemoteAddr().String(),
			"error":  err.Error(),
			"size":   len(data),
		}, "Failed to decode DNS query")
		s.emit(Event{Kind: EventError, Err: err})
		return
	}

	if reply, ok := s.screenEDNS(msg); ok {
		s.reply(reply, sock)
		return
	}

	if msg.Opcode != domain.OpcodeQuery {
		reply := msg.Reply()
		reply.RCode = domain.RCodeNotImp
		s.reply(reply, sock)
		return
	}

	req := &Request{Msg: msg, Conn: sock}
	res := &Response{Msg: msg.Reply(), server: s, conn: sock}
	s.handler(req, res)
}

// reply serializes and transmits a server-built response.
func (s *Server) reply(msg domain.Message, sock ServerSocket) {
	data, err := codec.Encode(msg)
	if err != nil {
		s.emit(Event{Kind: EventError, Err: err})
		return
	}
	if err := sock.Send(data); err != nil {
		s.emit(Event{Kind: EventError, Err: err})
	}
}
