package server

import (
	"net"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

// serveUDP reads datagrams until the socket closes. One datagram is one
// message; datagrams are dispatched synchronously so distinct queries
// keep their arrival order.
func (s *Server) serveUDP(conn *net.UDPConn) {
	defer s.wg.Done()
	defer s.Close() // either socket going down closes the server

	buffer := make([]byte, domain.MinUDPSize)
	for {
		n, remote, err := conn.ReadFromUDP(buffer)
		if err != nil {
			if !s.isClosing() {
				s.logger.Warn(map[string]any{"error": err.Error()}, "UDP socket failed")
				s.emit(Event{Kind: EventError, Err: err})
			}
			return
		}

		packet := make([]byte, n)
		copy(packet, buffer[:n])
		s.dispatch(packet, &udpSocket{conn: conn, remote: remote})
	}
}
