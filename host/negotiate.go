// This file is part of https://github.com/racingmars/go3270/
// Copyright 2020 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package host

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/bcrandall/tn3270e/internal/telnet"
	"github.com/bcrandall/tn3270e/internal/tn3270e"
)

// DevInfo describes what was learned about a connected 3270 client during
// NegotiateTelnet: its terminal type, code page, model, and (if it
// supports an alternate screen size) its full screen dimensions.
type DevInfo interface {
	// TerminalType is the raw terminal-type string the client reported
	// (e.g. "IBM-3278-2" or "IBM-3279-4-E").
	TerminalType() string

	// Codepage is the client's negotiated code page, or the library
	// default if none was determined.
	Codepage() Codepage

	// AltDimensions returns the client's full screen size, which may be
	// larger than the default 24x80 for models 3, 4, and 5.
	AltDimensions() (rows, cols int)

	// Model is the 3278/3279 model number (2-5).
	Model() int

	// LUName is the LU name the client associated with, or "" if none
	// was negotiated.
	LUName() string

	// Extended reports whether the TN3270E DATA-STREAM-CTL function was
	// agreed (structured fields, SCS, and the 5-byte record header).
	Extended() bool
}

type devInfo struct {
	termType string
	cp       Codepage
	rows     int
	cols     int
	model    int
	lu       string
	extended bool
}

func (d *devInfo) TerminalType() string        { return d.termType }
func (d *devInfo) Codepage() Codepage          { return d.cp }
func (d *devInfo) AltDimensions() (int, int)   { return d.rows, d.cols }
func (d *devInfo) Model() int                  { return d.model }
func (d *devInfo) LUName() string              { return d.lu }
func (d *devInfo) Extended() bool              { return d.extended }

// modelDimensions maps a 3278/3279 model number to its row/column count
// (IBM GA23-0059).
var modelDimensions = map[int][2]int{
	2: {24, 80},
	3: {32, 80},
	4: {43, 80},
	5: {27, 132},
}

// framers holds one Framer per live connection, since negotiation state
// and any bytes buffered ahead of an IAC-EOR boundary must persist across
// the separate NegotiateTelnet/ShowScreen/HandleScreen calls the host API
// makes against the same net.Conn.
var framers = struct {
	sync.Mutex
	m map[net.Conn]*telnet.Framer
}{m: make(map[net.Conn]*telnet.Framer)}

func framerFor(conn net.Conn) *telnet.Framer {
	framers.Lock()
	defer framers.Unlock()
	f, ok := framers.m[conn]
	if !ok {
		f = telnet.NewFramer(conn)
		framers.m[conn] = f
	}
	return f
}

// CloseConn drops the cached Framer for conn. Callers aren't required to
// call this -- the map entry is small and harmless to leak for the life of
// a long-running process -- but long-lived listeners serving many short
// connections should call it after conn.Close() to bound memory.
func CloseConn(conn net.Conn) {
	framers.Lock()
	defer framers.Unlock()
	delete(framers.m, conn)
}

// negotiationTimeout bounds how long NegotiateTelnet waits for the client
// to respond before falling back to basic (non-TN3270E) 24x80 mode.
const negotiationTimeout = 5 * time.Second

// NegotiateTelnet performs a real Q-method Telnet negotiation with conn:
// it requests BINARY, EOR, and TN3270E in both directions and
// TERMINAL-TYPE from the client, attempts
// the TN3270E DEVICE-TYPE/FUNCTIONS handshake, and returns what it learned
// about the client. If the client doesn't support TN3270E (or doesn't
// respond before negotiationTimeout), it falls back to basic 24x80 3270
// mode with whatever terminal-type string (if any) it did receive.
func NegotiateTelnet(conn net.Conn) (DevInfo, error) {
	f := framerFor(conn)

	dev := &devInfo{
		termType: telnet.DefaultDeviceType,
		cp:       defaultCodepage,
		rows:     24,
		cols:     80,
		model:    2,
	}

	neg := tn3270e.NewNegotiation(func(payload []byte) {
		f.WriteSubnegotiation(telnet.OptTN3270E, payload)
	}, tn3270e.FunctionResponses|tn3270e.FunctionDataStreamCtl)

	requestedTType := false
	f.Negotiator.OnSubnegotiation = func(opt byte, payload []byte) {
		switch opt {
		case telnet.OptTType:
			if len(payload) > 0 && payload[0] == telnet.TTypeIs {
				applyTerminalType(dev, string(payload[1:]))
			}
		case telnet.OptTN3270E:
			if len(payload) > 0 {
				neg.HandleSubnegotiation(payload)
			}
		}
	}

	f.Negotiator.RequestHim(telnet.OptTType)
	f.Negotiator.RequestUs(telnet.OptEOR)
	f.Negotiator.RequestHim(telnet.OptEOR)
	f.Negotiator.RequestUs(telnet.OptBinary)
	f.Negotiator.RequestHim(telnet.OptBinary)
	f.Negotiator.RequestUs(telnet.OptTN3270E)
	f.Negotiator.RequestHim(telnet.OptTN3270E)

	conn.SetReadDeadline(time.Now().Add(negotiationTimeout))
	defer conn.SetReadDeadline(time.Time{})

	began := false
	for {
		if !began && f.Negotiator.UsEnabled(telnet.OptTN3270E) &&
			f.Negotiator.HimEnabled(telnet.OptTN3270E) {
			began = true
			neg.Begin()
		}
		if !requestedTType &&
			(f.Negotiator.UsEnabled(telnet.OptTType) || f.Negotiator.HimEnabled(telnet.OptTType)) {
			requestedTType = true
			f.RequestTerminalType()
		}
		if began && requestedTType && (neg.Bound() || failedOrUnsupported(neg)) {
			break
		}

		_, eor, err := f.Step()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				break
			}
			return dev, fmt.Errorf("host: negotiating telnet options: %w", err)
		}
		if eor {
			break
		}
	}

	if neg.Bound() {
		f.Negotiator.BindTN3270E()
		dev.lu = neg.LUName
		dev.extended = neg.Functions.Has(tn3270e.FunctionDataStreamCtl)
		applyTerminalType(dev, neg.DeviceType)
	}

	debugf("negotiated: termtype=%s model=%d rows=%d cols=%d lu=%q extended=%v\n",
		dev.termType, dev.model, dev.rows, dev.cols, dev.lu, dev.extended)

	return dev, nil
}

func failedOrUnsupported(neg *tn3270e.Negotiation) bool {
	failed, _ := neg.Failed()
	return failed
}

// applyTerminalType records the negotiated terminal-type string on dev and
// derives the model and screen dimensions it implies.
func applyTerminalType(dev *devInfo, termType string) {
	dev.termType = termType
	dev.model = modelFromDeviceType(termType)
	if dims, ok := modelDimensions[dev.model]; ok {
		dev.rows, dev.cols = dims[0], dims[1]
	}
}

func modelFromDeviceType(name string) int {
	for _, m := range []int{2, 3, 4, 5} {
		suffix := fmt.Sprintf("%d", m)
		if strings.Contains(name, "3278-"+suffix) || strings.Contains(name, "3279-"+suffix) {
			return m
		}
	}
	return 2
}
