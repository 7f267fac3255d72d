package server

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// MaxTCPPayload is the largest DNS message a 2-octet length prefix can
// frame.
const MaxTCPPayload = 0xFFFF

// ErrResponseTooLarge reports a response exceeding the transport's size
// ceiling: 512 octets for UDP, 65535 for TCP.
var ErrResponseTooLarge = errors.New("response too large for transport")

// ServerSocket abstracts the transport a request arrived on. Handlers
// see the same capability for UDP and TCP peers.
type ServerSocket interface {
	// Network names the transport, "udp" or "tcp".
	Network() string

	// RemoteAddr identifies the requesting peer.
	RemoteAddr() net.Addr

	// Send transmits one DNS message to the peer, applying the
	// transport's framing and size ceiling.
	Send(p []byte) error

	// Close releases per-peer transport state. For UDP it is a no-op.
	Close() error
}

// udpSocket addresses one datagram peer on the shared UDP socket.
type udpSocket struct {
	conn   *net.UDPConn
	remote *net.UDPAddr
}

func (s *udpSocket) Network() string      { return "udp" }
func (s *udpSocket) RemoteAddr() net.Addr { return s.remote }
func (s *udpSocket) Close() error         { return nil }

func (s *udpSocket) Send(p []byte) error {
	if len(p) > int(domain.MinUDPSize) {
		return fmt.Errorf("%w: %d octets over UDP", ErrResponseTooLarge, len(p))
	}
	_, err := s.conn.WriteToUDP(p, s.remote)
	return err
}

// tcpSocket wraps one accepted stream connection.
type tcpSocket struct {
	conn net.Conn
}

func (s *tcpSocket) Network() string      { return "tcp" }
func (s *tcpSocket) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }
func (s *tcpSocket) Close() error         { return s.conn.Close() }

func (s *tcpSocket) Send(p []byte) error {
	if len(p) > MaxTCPPayload {
		return fmt.Errorf("%w: %d octets over TCP", ErrResponseTooLarge, len(p))
	}
	framed := make([]byte, 2+len(p))
	binary.BigEndian.PutUint16(framed, uint16(len(p)))
	copy(framed[2:], p)
	_, err := s.conn.Write(framed)
	return err
}
