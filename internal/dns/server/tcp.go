package server

import (
	"encoding/binary"
	"net"
)

// serveTCP accepts stream connections until the listener closes. Each
// connection gets its own framing loop; within one connection messages
// dispatch in order, across connections no order is promised.
func (s *Server) serveTCP(ln net.Listener) {
	defer s.wg.Done()
	defer s.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if !s.isClosing() {
				s.logger.Warn(map[string]any{"error": err.Error()}, "TCP listener failed")
				s.emit(Event{Kind: EventError, Err: err})
			}
			return
		}
		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

// serveConn runs the length-prefix framer over one connection. The
// framer buffers incoming chunks, extracts the 2-octet big-endian length
// as soon as it is complete even when it was split across reads, waits
// for the body, and dispatches. Surplus bytes after one message stay
// buffered for the next message on the same connection.
func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	sock := &tcpSocket{conn: conn}
	var pending []byte
	chunk := make([]byte, 4096)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)
			for len(pending) >= 2 {
				length := int(binary.BigEndian.Uint16(pending[:2]))
				if len(pending) < 2+length {
					break
				}
				frame := make([]byte, length)
				copy(frame, pending[2:2+length])
				pending = pending[2+length:]
				s.dispatch(frame, sock)
			}
		}
		if err != nil {
			// EOF, peer reset, or a Close from an empty response
			return
		}
	}
}
