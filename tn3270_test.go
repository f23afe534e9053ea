// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270e

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcrandall/tn3270e/host"
)

// negotiatedPair opens a client Session over one end of a loopback TCP
// connection while host.NegotiateTelnet plays the mainframe side on the
// other end, giving an end-to-end exercise of the real wire protocol
// between this module's two roles. net.Pipe is not used: it has no
// buffering, and both roles write their option requests before reading.
func negotiatedPair(t *testing.T, cfg Config) (*Session, net.Conn, host.DevInfo) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	accepted := make(chan net.Conn, 1)
	go func() {
		c, _ := ln.Accept()
		accepted <- c
	}()
	clientConn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	hostConn := <-accepted
	ln.Close()
	require.NotNil(t, hostConn)
	t.Cleanup(func() { clientConn.Close(); hostConn.Close() })

	type devResult struct {
		dev host.DevInfo
		err error
	}
	hostDone := make(chan devResult, 1)
	go func() {
		dev, err := host.NegotiateTelnet(hostConn)
		hostDone <- devResult{dev, err}
	}()

	cfg.Host = "127.0.0.1"
	cfg.Port = 3270
	sess, err := Open(clientConn, cfg)
	require.NoError(t, err)

	r := <-hostDone
	require.NoError(t, r.err)
	return sess, hostConn, r.dev
}

func TestOpenNegotiatesBasicMode(t *testing.T) {
	sess, _, dev := negotiatedPair(t, Config{Model: 2})
	defer sess.Close("test done")

	assert.Equal(t, "3270-basic", sess.Mode())
	assert.Empty(t, sess.DeviceType())
	assert.False(t, dev.Extended())
}

func TestOpenNegotiatesExtendedMode(t *testing.T) {
	sess, _, dev := negotiatedPair(t, Config{Model: 2, Extended: true})
	defer sess.Close("test done")

	assert.Equal(t, "TN3270E", sess.Mode())
	assert.NotEmpty(t, sess.DeviceType())
	assert.True(t, dev.Extended())
}

func TestScreenSnapshotReflectsHostWrite(t *testing.T) {
	cfg := Config{Model: 2}
	sess, hostConn, _ := negotiatedPair(t, cfg)
	defer sess.Close("test done")

	scr := host.Screen{
		{Row: 0, Col: 0, Content: "HELLO"},
	}
	writeDone := make(chan error, 1)
	go func() {
		_, err := host.ShowScreen(scr, nil, 0, 0, hostConn)
		writeDone <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sess.WaitForHostRecord(ctx))

	snap := sess.ScreenSnapshot()
	assert.Equal(t, 24, snap.Rows)
	assert.Equal(t, 80, snap.Cols)

	cp := cfg.codepage()
	var got string
	// Cell 0 holds the field attribute; the content starts at cell 1.
	for i := 1; i <= 5; i++ {
		got += string(cp.DecodeByte(snap.Cells[i].Code))
	}
	assert.Equal(t, "HELLO", got)

	// host's ShowScreen is still blocked reading our reply; send one so
	// its goroutine can return and the test doesn't leak it.
	require.NoError(t, sess.SendKey(AIDEnter))
	select {
	case err := <-writeDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("host ShowScreen never returned")
	}
}

func TestSendKeyRoundTrip(t *testing.T) {
	sess, hostConn, _ := negotiatedPair(t, Config{Model: 2})
	defer sess.Close("test done")

	scr := host.Screen{
		{Row: 0, Col: 0, Content: "NAME:"},
		{Row: 0, Col: 6, Name: "name", Write: true},
	}
	respCh := make(chan host.Response, 1)
	errCh := make(chan error, 1)
	go func() {
		resp, err := host.ShowScreen(scr, nil, 0, 6, hostConn)
		respCh <- resp
		errCh <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sess.WaitForHostRecord(ctx))

	require.NoError(t, sess.TypeString("BOB"))
	require.NoError(t, sess.SendKey(AIDEnter))

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("host ShowScreen never returned")
	}
	resp := <-respCh
	assert.Equal(t, AIDEnter, resp.AID)
	assert.Equal(t, "BOB", resp.Values["name"])
}

func TestClearSendsAIDClear(t *testing.T) {
	sess, hostConn, _ := negotiatedPair(t, Config{Model: 2})
	defer sess.Close("test done")

	scr := host.Screen{{Row: 0, Col: 0, Content: "SCREEN"}}
	respCh := make(chan host.Response, 1)
	go func() {
		resp, _ := host.ShowScreen(scr, nil, 0, 0, hostConn)
		respCh <- resp
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sess.WaitForHostRecord(ctx))

	require.NoError(t, sess.Clear())

	select {
	case resp := <-respCh:
		assert.Equal(t, AIDClear, resp.AID)
	case <-time.After(2 * time.Second):
		t.Fatal("host ShowScreen never returned")
	}
}

func TestWaitForHostRecordRespectsContextCancellation(t *testing.T) {
	sess, _, _ := negotiatedPair(t, Config{Model: 2})
	defer sess.Close("test done")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := sess.WaitForHostRecord(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseUnblocksWaitForHostRecord(t *testing.T) {
	sess, _, _ := negotiatedPair(t, Config{Model: 2})

	done := make(chan error, 1)
	go func() {
		done <- sess.WaitForHostRecord(context.Background())
	}()

	require.NoError(t, sess.Close("shutting down"))

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForHostRecord never unblocked after Close")
	}
}

func TestMoveCursor(t *testing.T) {
	sess, _, _ := negotiatedPair(t, Config{Model: 2})
	defer sess.Close("test done")

	require.NoError(t, sess.MoveCursor(3, 10))
	snap := sess.ScreenSnapshot()
	assert.Equal(t, 3*80+10, snap.Cursor)
}
