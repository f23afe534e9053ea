// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270e

import (
	"fmt"
	"time"

	"github.com/bcrandall/tn3270e/internal/codepage"
)

// Config is everything a Session needs to open a connection to a
// TN3270(E) host (spec §6 "Session API consumed by external
// collaborators").
type Config struct {
	Host string
	Port int

	// Model selects the screen geometry to offer during negotiation:
	// 2 (24x80), 3 (32x80), 4 (43x80), or 5 (27x132).
	Model int

	// Extended requests TN3270E ("-E" device types) instead of plain
	// basic 3270.
	Extended bool

	// LUName is kept on the Config but is not sent during
	// negotiation; Session.LUName reports the LU the host names in
	// its DEVICE-TYPE IS reply.
	LUName string

	// CodePage names the EBCDIC code page to decode/encode through,
	// e.g. "037" or "1047". Empty selects the module default (037).
	CodePage string

	// NegotiationTimeout bounds the Telnet/TN3270E handshake (spec
	// §5 "Timeouts"). Zero selects DefaultNegotiationTimeout.
	NegotiationTimeout time.Duration

	// TraceRecorder receives every negotiation and data-stream event
	// this session produces. Nil selects NoopSink.
	TraceRecorder TraceSink
}

// DefaultNegotiationTimeout is used when Config.NegotiationTimeout is
// zero (spec §5 "single per-handshake timeout (default 30 s)").
const DefaultNegotiationTimeout = 30 * time.Second

var modelGeometry = map[int][2]int{
	2: {24, 80},
	3: {32, 80},
	4: {43, 80},
	5: {27, 132},
}

// geometry returns the rows/cols this config's model implies,
// defaulting to Model 2 for an unrecognized or unset value.
func (c Config) geometry() (rows, cols int) {
	if g, ok := modelGeometry[c.Model]; ok {
		return g[0], g[1]
	}
	return 24, 80
}

// codepage resolves CodePage to a *codepage.Codepage, defaulting to
// CP037 (spec §6 lists "037" first among code_page values).
func (c Config) codepage() *codepage.Codepage {
	if c.CodePage == "" {
		return codepage.CP037
	}
	return codepage.Lookup(c.CodePage)
}

// deviceType builds the DEVICE-TYPE string this config offers during
// negotiation, e.g. "IBM-3278-2" or "IBM-3279-3-E".
func (c Config) deviceType() string {
	model := c.Model
	if _, ok := modelGeometry[model]; !ok {
		model = 2
	}
	family := "IBM-3278"
	if c.Extended {
		family = "IBM-3279"
	}
	name := fmt.Sprintf("%s-%d", family, model)
	if c.Extended {
		name += "-E"
	}
	return name
}

func (c Config) negotiationTimeout() time.Duration {
	if c.NegotiationTimeout <= 0 {
		return DefaultNegotiationTimeout
	}
	return c.NegotiationTimeout
}

func (c Config) traceSink() TraceSink {
	if c.TraceRecorder == nil {
		return NoopSink{}
	}
	return c.TraceRecorder
}

func (c Config) address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
