package server

import (
	"encoding/binary"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cepharum/dnsd/internal/dns/codec"
	"github.com/cepharum/dnsd/internal/dns/domain"
)

// startServer listens on loopback ephemeral ports and tears down with
// the test.
func startServer(t *testing.T, handler Handler, opts Options) *Server {
	t.Helper()
	s := newTestServer(handler, opts)
	require.NoError(t, s.Listen(0, "127.0.0.1"))
	t.Cleanup(func() {
		_ = s.Close()
		s.Wait()
	})

	select {
	case ev := <-s.Events():
		require.Equal(t, EventListening, ev.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no listening event")
	}
	return s
}

func encodeQuery(t *testing.T, id uint16, name string, rrtype domain.RRType) []byte {
	t.Helper()
	msg := domain.Message{
		ID:               id,
		Opcode:           domain.OpcodeQuery,
		RecursionDesired: true,
		Question:         []domain.ResourceRecord{domain.NewQuestion(name, rrtype, domain.RRClassIN)},
	}
	data, err := codec.Encode(msg)
	require.NoError(t, err)
	return data
}

// readFrame reads one length-prefixed message from a TCP connection.
func readFrame(t *testing.T, conn net.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	header := make([]byte, 2)
	_, err := io.ReadFull(conn, header)
	require.NoError(t, err)
	body := make([]byte, binary.BigEndian.Uint16(header))
	_, err = io.ReadFull(conn, body)
	require.NoError(t, err)
	return body
}

func TestServer_UDPQueryAnswered(t *testing.T) {
	s := startServer(t, func(req *Request, res *Response) {
		assert.Equal(t, "udp", req.Conn.Network())
		require.NoError(t, res.EndA("1.2.3.4"))
	}, Options{})
	s.Zone("example", "ns1.example", "hostmaster@example", "1", "2h", "30m", "2w", "1h")

	conn, err := net.Dial("udp", s.UDPAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(encodeQuery(t, 0x5151, "foo.example", domain.RRTypeA))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buffer := make([]byte, 512)
	n, err := conn.Read(buffer)
	require.NoError(t, err)

	msg, err := codec.Decode(buffer[:n])
	require.NoError(t, err)
	assert.Equal(t, uint16(0x5151), msg.ID)
	assert.True(t, msg.Response)
	assert.True(t, msg.Authoritative)
	assert.False(t, msg.RecursionAvailable)
	assert.True(t, msg.RecursionDesired)
	require.Len(t, msg.Answer, 1)
	assert.Equal(t, "foo.example", msg.Answer[0].Name)
	assert.Equal(t, domain.RRTypeA, msg.Answer[0].Type)
	assert.Equal(t, domain.RRClassIN, msg.Answer[0].Class)
	assert.Equal(t, uint32(3600), msg.Answer[0].TTL)
	assert.Equal(t, domain.AData{Address: "1.2.3.4"}, msg.Answer[0].Data)
}

func TestServer_TCPFramingConcatenatedQueries(t *testing.T) {
	var mu sync.Mutex
	var names []string
	s := startServer(t, func(req *Request, res *Response) {
		mu.Lock()
		names = append(names, req.Msg.Question[0].Name)
		mu.Unlock()
		require.NoError(t, res.EndA("1.2.3.4"))
	}, Options{})
	s.Zone("example", "ns1.example", "hostmaster@example", "1", "2h", "30m", "2w", "1h")

	conn, err := net.Dial("tcp", s.TCPAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	frame := func(q []byte) []byte {
		framed := make([]byte, 2+len(q))
		binary.BigEndian.PutUint16(framed, uint16(len(q)))
		copy(framed[2:], q)
		return framed
	}
	q1 := frame(encodeQuery(t, 1, "a.example", domain.RRTypeA))
	q2 := frame(encodeQuery(t, 2, "b.example", domain.RRTypeA))

	// both queries land in one write
	_, err = conn.Write(append(append([]byte{}, q1...), q2...))
	require.NoError(t, err)

	first, err := codec.Decode(readFrame(t, conn))
	require.NoError(t, err)
	second, err := codec.Decode(readFrame(t, conn))
	require.NoError(t, err)

	assert.Equal(t, uint16(1), first.ID)
	assert.Equal(t, "a.example", first.Answer[0].Name)
	assert.Equal(t, uint16(2), second.ID)
	assert.Equal(t, "b.example", second.Answer[0].Name)

	mu.Lock()
	assert.Equal(t, []string{"a.example", "b.example"}, names)
	mu.Unlock()
}

func TestServer_TCPFramingSplitLengthPrefix(t *testing.T) {
	s := startServer(t, func(req *Request, res *Response) {
		require.NoError(t, res.EndA("1.2.3.4"))
	}, Options{})
	s.Zone("example", "ns1.example", "hostmaster@example", "1", "2h", "30m", "2w", "1h")

	conn, err := net.Dial("tcp", s.TCPAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	query := encodeQuery(t, 3, "c.example", domain.RRTypeA)
	framed := make([]byte, 2+len(query))
	binary.BigEndian.PutUint16(framed, uint16(len(query)))
	copy(framed[2:], query)

	// the length field itself is split across two writes
	_, err = conn.Write(framed[:1])
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	_, err = conn.Write(framed[1:])
	require.NoError(t, err)

	msg, err := codec.Decode(readFrame(t, conn))
	require.NoError(t, err)
	assert.Equal(t, uint16(3), msg.ID)
	require.Len(t, msg.Answer, 1)
}

func TestServer_TCPOutOfZoneClosesWithoutPayload(t *testing.T) {
	s := startServer(t, func(req *Request, res *Response) {
		require.NoError(t, res.End())
	}, Options{})
	s.Zone("example.com", "ns1.example.com", "hostmaster@example.com", "1", "2h", "30m", "2w", "10m")

	conn, err := net.Dial("tcp", s.TCPAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	query := encodeQuery(t, 4, "other.org", domain.RRTypeA)
	framed := make([]byte, 2+len(query))
	binary.BigEndian.PutUint16(framed, uint16(len(query)))
	copy(framed[2:], query)
	_, err = conn.Write(framed)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buffer := make([]byte, 16)
	n, err := conn.Read(buffer)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestServer_SOAQueryOverTCP(t *testing.T) {
	s := startServer(t, func(req *Request, res *Response) {
		require.NoError(t, res.End())
	}, Options{})
	s.Zone("example.com", "ns1.example.com", "hostmaster@example.com", "1", "2h", "30m", "2w", "10m")

	conn, err := net.Dial("tcp", s.TCPAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	query := encodeQuery(t, 5, "example.com", domain.RRTypeSOA)
	framed := make([]byte, 2+len(query))
	binary.BigEndian.PutUint16(framed, uint16(len(query)))
	copy(framed[2:], query)
	_, err = conn.Write(framed)
	require.NoError(t, err)

	msg, err := codec.Decode(readFrame(t, conn))
	require.NoError(t, err)
	require.Len(t, msg.Answer, 1)
	assert.Equal(t, domain.RRTypeSOA, msg.Answer[0].Type)
	soa, ok := msg.Answer[0].Data.(domain.SOAData)
	require.True(t, ok)
	assert.Equal(t, "ns1.example.com", soa.MName)
	assert.Equal(t, "hostmaster@example.com", soa.RName)
}

func TestServer_CloseIsIdempotent(t *testing.T) {
	s := newTestServer(nil, Options{})
	require.NoError(t, s.Listen(0, "127.0.0.1"))

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	s.Wait()

	closeEvents := 0
	for {
		select {
		case ev := <-s.Events():
			if ev.Kind == EventClose {
				closeEvents++
			}
			continue
		default:
		}
		break
	}
	assert.Equal(t, 1, closeEvents)
}

func TestServer_ListenAfterCloseFails(t *testing.T) {
	s := newTestServer(nil, Options{})
	require.NoError(t, s.Close())
	assert.Error(t, s.Listen(0, "127.0.0.1"))
}

func TestServer_UDPResponseTooLarge(t *testing.T) {
	sock := &udpSocket{}
	err := sock.Send(make([]byte, 513))
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestServer_TCPResponseTooLarge(t *testing.T) {
	sock := &tcpSocket{}
	err := sock.Send(make([]byte, MaxTCPPayload+1))
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}
