package telnet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipe returns the two ends of a loopback TCP connection. net.Pipe is
// not used: it has no buffering, so a Framer answering a negotiation
// command inline would block while its peer is still writing.
func pipe(t *testing.T) (a, b net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	accepted := make(chan net.Conn, 1)
	go func() {
		c, _ := ln.Accept()
		accepted <- c
	}()
	a, err = net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	b = <-accepted
	require.NotNil(t, b)
	t.Cleanup(func() { a.Close(); b.Close() })
	return a, b
}

func TestWriteRecordEscapesIACAndAppendsEOR(t *testing.T) {
	client, server := pipe(t)
	fw := NewFramer(client)
	fr := NewFramer(server)

	go fw.WriteRecord([]byte{0xF5, 0xC3, IAC, 0x01})

	var rec []byte
	done := make(chan struct{})
	go func() {
		rec, _ = fr.ReadRecord()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for record")
	}
	assert.Equal(t, []byte{0xF5, 0xC3, IAC, 0x01}, rec)
}

func TestReadRecordProcessesNegotiationInline(t *testing.T) {
	client, server := pipe(t)
	fw := NewFramer(client)
	fr := NewFramer(server)

	go func() {
		client.Write([]byte{IAC, WILL, OptBinary})
		fw.WriteRecord([]byte{0xC1})
	}()

	rec, err := fr.ReadRecord()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC1}, rec)
	assert.True(t, fr.Negotiator.HimEnabled(OptBinary))
}

func TestSubnegotiationRoundTrip(t *testing.T) {
	client, server := pipe(t)
	fw := NewFramer(client)
	fr := NewFramer(server)

	var gotOpt byte
	var gotPayload []byte
	fr.Negotiator.OnSubnegotiation = func(opt byte, payload []byte) {
		gotOpt = opt
		gotPayload = append([]byte{}, payload...)
	}

	go func() {
		fw.WriteSubnegotiation(OptTType, []byte{TTypeIs, 'I', 'B', 'M'})
		fw.WriteRecord([]byte{0x01})
	}()

	rec, err := fr.ReadRecord()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, rec)
	assert.Equal(t, OptTType, gotOpt)
	assert.Equal(t, []byte{TTypeIs, 'I', 'B', 'M'}, gotPayload)
}
