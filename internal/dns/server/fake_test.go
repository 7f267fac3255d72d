package server

import (
	"net"
	"time"

	"github.com/cepharum/dnsd/internal/dns/common/clock"
	"github.com/cepharum/dnsd/internal/dns/common/log"
)

// fakeSocket captures transmissions instead of touching the network.
type fakeSocket struct {
	network string
	sent    [][]byte
	closed  bool
}

func (f *fakeSocket) Network() string { return f.network }

func (f *fakeSocket) RemoteAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5353}
}

func (f *fakeSocket) Send(p []byte) error {
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeSocket) Close() error {
	f.closed = true
	return nil
}

// newTestServer builds a quiet server with a deterministic clock.
func newTestServer(handler Handler, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewMockClock(time.Unix(1700000000, 0))
	}
	return NewServer(handler, opts)
}
