// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

// Package tn3270e implements a TN3270/TN3270E terminal-emulator core:
// Telnet option negotiation, TN3270E DEVICE-TYPE/FUNCTIONS handshake,
// a 3270 data-stream parser/writer, and the screen/field model those
// drive, exposed through a Session a client application drives (spec
// §6). The host package in this module instead plays the opposite,
// mainframe-side role of this same wire protocol.
package tn3270e

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/bcrandall/tn3270e/internal/addressing"
	"github.com/bcrandall/tn3270e/internal/screen"
	"github.com/bcrandall/tn3270e/internal/stream"
	"github.com/bcrandall/tn3270e/internal/telnet"
	"github.com/bcrandall/tn3270e/internal/tn3270e"
)

// Cell, Field, and AIDState are the presentation-space types a
// Snapshot exposes, re-exported from internal/screen so callers never
// import an internal package directly.
type (
	Cell     = screen.Cell
	Field    = screen.Field
	AIDState = screen.AIDState
)

// Snapshot is an immutable read of a Session's presentation space at
// one moment (spec §6 "screen_snapshot()").
type Snapshot struct {
	Rows, Cols int
	Cells      []Cell
	Fields     []Field
	Cursor     int
	AID        AIDState
}

// Session is a client-side TN3270(E) connection: it drives the
// Telnet/TN3270E handshake over a caller-supplied transport, keeps an
// authoritative screen model in sync with the host, and exposes the
// operator actions a terminal emulator needs (spec §6).
type Session struct {
	cfg    Config
	conn   net.Conn
	framer *telnet.Framer
	neg    *tn3270e.Negotiation
	resp   tn3270e.ResponseTracker

	mu     sync.Mutex
	scr    *screen.Screen
	parser *stream.Parser

	mode    telnet.Mode
	allow16 bool

	trace TraceSink
	start time.Time

	recordCh chan struct{}

	closeOnce sync.Once
	closeCh   chan struct{}
	closeErr  error
}

// Open negotiates a TN3270(E) session over transport and starts the
// background record loop. The caller owns transport's lifecycle up to
// Close (spec §6 "Transport boundary ... the core does not open it;
// it is handed in").
func Open(transport net.Conn, cfg Config) (*Session, error) {
	rows, cols := cfg.geometry()
	s := &Session{
		cfg:      cfg,
		conn:     transport,
		framer:   telnet.NewFramer(transport),
		scr:      screen.New(rows, cols, cfg.codepage()),
		trace:    cfg.traceSink(),
		start:    time.Now(),
		recordCh: make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}
	s.parser = stream.NewParser(s.scr, cfg.codepage())

	if err := s.negotiate(); err != nil {
		transport.Close()
		return nil, err
	}

	go s.readLoop()
	return s, nil
}

// negotiate drives the Telnet option exchange and, for Extended
// configs, the TN3270E DEVICE-TYPE/FUNCTIONS handshake, downgrading
// on timeout per spec §5 "Timeouts" (TN3270E -> basic -> NVT, or
// fail if even NVT cannot be established).
func (s *Session) negotiate() error {
	n := s.framer.Negotiator
	desired := tn3270e.FunctionResponses | tn3270e.FunctionDataStreamCtl
	s.neg = tn3270e.NewNegotiation(func(payload []byte) {
		s.emitTrace(subnegEvent(telnet.OptTN3270E, payload))
		s.framer.WriteSubnegotiation(telnet.OptTN3270E, payload)
	}, desired)

	began := false
	n.OnSubnegotiation = func(opt byte, payload []byte) {
		s.emitTrace(subnegEvent(opt, payload))
		switch opt {
		case telnet.OptTType:
			if len(payload) > 0 && payload[0] == telnet.TTypeSend {
				s.framer.RespondTerminalType(s.cfg.deviceType())
			}
		case telnet.OptTN3270E:
			s.neg.HandleSubnegotiation(payload)
		}
	}

	n.RequestUs(telnet.OptBinary)
	n.RequestHim(telnet.OptBinary)
	n.RequestUs(telnet.OptEOR)
	n.RequestHim(telnet.OptEOR)
	n.RequestUs(telnet.OptTType)
	n.RequestHim(telnet.OptTType)
	if s.cfg.Extended {
		n.RequestUs(telnet.OptTN3270E)
		n.RequestHim(telnet.OptTN3270E)
	}

	deadline := time.Now().Add(s.cfg.negotiationTimeout())
	s.conn.SetReadDeadline(deadline)
	defer s.conn.SetReadDeadline(time.Time{})

	for {
		if s.cfg.Extended && !began && n.UsEnabled(telnet.OptTN3270E) && n.HimEnabled(telnet.OptTN3270E) {
			s.neg.Begin()
			began = true
		}
		basic := n.UsEnabled(telnet.OptBinary) && n.HimEnabled(telnet.OptBinary) &&
			n.UsEnabled(telnet.OptEOR) && n.HimEnabled(telnet.OptEOR) &&
			n.UsEnabled(telnet.OptTType) && n.HimEnabled(telnet.OptTType)
		if basic && (!s.cfg.Extended || began) {
			done := !s.cfg.Extended || s.neg.Bound()
			failed, _ := s.neg.Failed()
			if done || failed {
				break
			}
		}

		_, eor, err := s.framer.Step()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				break
			}
			return fmt.Errorf("tn3270e: negotiation failed: %w", err)
		}
		if eor {
			// A record arrived before negotiation settled; there is
			// nothing meaningful in it yet (spec §4.1 "Errors").
			continue
		}
	}

	if began && s.neg.Bound() {
		n.BindTN3270E()
	}
	s.mode = n.Mode()
	chosen := s.mode.String()
	requested := "NVT"
	if s.cfg.Extended {
		requested = "TN3270E"
	} else {
		requested = "3270-basic"
	}
	s.emitTrace(modeDecisionEvent(requested, chosen, chosen != requested))

	if s.mode == telnet.ModeNVT {
		return fmt.Errorf("tn3270e: negotiation failed: could not establish 3270-basic or TN3270E mode")
	}

	s.allow16 = s.mode == telnet.ModeTN3270E && s.neg.Functions.Has(tn3270e.FunctionDataStreamCtl)
	return nil
}

// readLoop pulls complete records off the transport, applies them to
// the screen, and answers any reply the record demands (spec §4.3
// "Read Buffer/Read Modified"), until the transport closes.
func (s *Session) readLoop() {
	for {
		rec, err := s.framer.ReadRecord()
		if err != nil {
			s.fail(err)
			return
		}

		body := rec
		if s.mode == telnet.ModeTN3270E {
			hdr, rest, err := tn3270e.DecodeHeader(rec)
			if err != nil {
				s.emitTrace(errorEvent(err.Error()))
				continue
			}
			body = rest
			s.emitTrace(headerEvent(fmt.Sprintf("%d", hdr.DataType), hdr.Seq, fmt.Sprintf("%d", hdr.RequestFlag)))
			if hdr.DataType != tn3270e.DataType3270 {
				continue
			}
		}

		s.mu.Lock()
		result, perr := s.parser.ParseRecord(body)
		if perr != nil {
			s.emitTrace(errorEvent(perr.Error()))
		}
		s.emitTrace(orderEvent(fmt.Sprintf("%d", result.Command), s.scr.Cursor(), len(body)))

		var reply []byte
		if result.Reply != stream.ReplyNone {
			reply = s.buildReply(result.Reply)
		}
		s.mu.Unlock()

		if reply != nil {
			if err := s.sendReply(reply); err != nil {
				s.fail(err)
				return
			}
		}

		select {
		case s.recordCh <- struct{}{}:
		default:
		}
	}
}

// buildReply must be called with s.mu held.
func (s *Session) buildReply(kind stream.ReplyKind) []byte {
	mode := addressing.PreferredMode(s.scr.Len(), s.allow16)
	aid := byte(s.scr.AID().AID)
	switch kind {
	case stream.ReplyReadBuffer:
		return stream.WriteReadBuffer(s.scr, aid, mode)
	case stream.ReplyReadModified:
		return stream.WriteReadModified(s.scr, aid, mode)
	case stream.ReplyReadModifiedAll:
		return stream.WriteReadModifiedAll(s.scr, aid, mode)
	case stream.ReplyQuery:
		return s.parser.QueryReply()
	default:
		return nil
	}
}

func (s *Session) sendReply(body []byte) error {
	rec := body
	if s.mode == telnet.ModeTN3270E {
		h := tn3270e.Header{DataType: tn3270e.DataType3270, Seq: s.resp.NextSeq()}
		enc := h.Encode()
		rec = append(enc[:], body...)
	}
	return s.framer.WriteRecord(rec)
}

func (s *Session) emitTrace(e Event) { record(s.trace, s.start, e) }

func (s *Session) fail(err error) {
	s.closeOnce.Do(func() {
		s.closeErr = err
		close(s.closeCh)
	})
}

// WaitForHostRecord blocks until the next host-originated screen
// update has been fully applied, ctx is done, or the session closes
// (spec §6 "wait_for_host_record()").
func (s *Session) WaitForHostRecord(ctx context.Context) error {
	select {
	case <-s.recordCh:
		return nil
	case <-s.closeCh:
		if s.closeErr != nil {
			return s.closeErr
		}
		return fmt.Errorf("tn3270e: session closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ScreenSnapshot returns an immutable read of the current
// presentation space (spec §6 "screen_snapshot()").
func (s *Session) ScreenSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, cols := s.scr.Size()
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i] = s.scr.Cell(i)
	}
	return Snapshot{
		Rows:   rows,
		Cols:   cols,
		Cells:  cells,
		Fields: s.scr.Fields(),
		Cursor: s.scr.Cursor(),
		AID:    s.scr.AID(),
	}
}

// SendKey raises aid at the current cursor position and sends the
// corresponding Read Modified reply to the host (spec §6
// "send_key(aid)").
func (s *Session) SendKey(aid AID) error {
	s.mu.Lock()
	s.scr.RaiseAID(byte(aid))
	mode := addressing.PreferredMode(s.scr.Len(), s.allow16)
	reply := stream.WriteReadModified(s.scr, byte(aid), mode)
	s.scr.ClearAID()
	s.mu.Unlock()
	return s.sendReply(reply)
}

// TypeString encodes text's runes through the session's code page and
// delivers them one at a time to the screen's operator-input
// contract, stopping at the first rejected keystroke (spec §6
// "type_string(ebcdic_or_unicode)").
func (sess *Session) TypeString(text string) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := sess.scr.Codepage()
	for _, r := range text {
		code := cp.EncodeRune(r)
		ge := false
		if b, ok := cp.EncodeGE(r); ok {
			code, ge = b, true
		}
		if !sess.scr.Type(code, ge) {
			reason := sess.scr.InhibitReason
			return fmt.Errorf("tn3270e: input rejected at rune %q: inhibit reason %v", r, reason)
		}
	}
	return nil
}

// MoveCursor positions the cursor at (row, col) (spec §6
// "move_cursor(row,col)").
func (s *Session) MoveCursor(row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scr.MoveCursor(row, col)
	return nil
}

// Clear performs the local effect of the Clear key: the presentation
// space is erased and an AID-Clear Read Modified reply (AID byte
// only) is sent to the host (spec §6 "clear()").
func (s *Session) Clear() error {
	s.mu.Lock()
	s.scr.Clear()
	s.scr.RaiseAID(byte(AIDClear))
	mode := addressing.PreferredMode(s.scr.Len(), s.allow16)
	reply := stream.WriteReadModified(s.scr, byte(AIDClear), mode)
	s.scr.ClearAID()
	s.mu.Unlock()
	return s.sendReply(reply)
}

// Attn sends the 3270 ATTN key as a Telnet Interrupt Process, per the
// RFC 854 convention TN3270 emulators use for ATTN since it carries
// no data of its own (spec §6 "attn()").
func (s *Session) Attn() error {
	s.emitTrace(telnetEvent("out", "IP", 0))
	return s.framer.WriteCommand(telnet.IP)
}

// Close releases the transport. reason is recorded on the trace sink
// but otherwise carries no protocol meaning (spec §6 "close(reason)").
func (s *Session) Close(reason string) error {
	s.emitTrace(errorEvent(fmt.Sprintf("session closed: %s", reason)))
	s.closeOnce.Do(func() {
		s.closeErr = fmt.Errorf("tn3270e: session closed: %s", reason)
		close(s.closeCh)
	})
	return s.conn.Close()
}

// Mode reports the negotiated operating mode ("NVT", "3270-basic", or
// "TN3270E").
func (s *Session) Mode() string { return s.mode.String() }

// DeviceType reports the DEVICE-TYPE negotiated in TN3270E mode, or
// the empty string outside TN3270E mode.
func (s *Session) DeviceType() string {
	if s.neg == nil {
		return ""
	}
	return s.neg.DeviceType
}

// LUName reports the logical unit name bound in TN3270E mode, if any.
func (s *Session) LUName() string {
	if s.neg == nil {
		return ""
	}
	return s.neg.LUName
}
