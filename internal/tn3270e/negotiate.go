package tn3270e

import (
	"bytes"
	"fmt"
	"strings"
)

// Phase is where the DEVICE-TYPE/FUNCTIONS handshake currently stands
// (spec §4.2).
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDeviceType
	PhaseFunctions
	PhaseBound
	PhaseFailed
)

// Negotiation drives the client side of the TN3270E handshake: SEND
// DEVICE-TYPE, validate the server's DEVICE-TYPE IS, then converge
// FUNCTIONS REQUEST/IS in at most two round trips (spec §4.2).
type Negotiation struct {
	// Send transmits one TN3270E subnegotiation payload (the caller
	// wraps it in IAC SB TN3270E ... IAC SE, e.g. via
	// telnet.Framer.WriteSubnegotiation).
	Send func(payload []byte)

	Desired Functions

	Phase      Phase
	DeviceType string
	LUName     string
	Functions  Functions

	// IsPrinterLU is a supplemented feature (grounded on
	// original_source/pure3270/lu_lu_session.py, which distinguishes a
	// printer LU-LU session from a display one): true when the bound
	// device type or LU name identifies a 3287-class printer rather
	// than a 3278/3279 display.
	IsPrinterLU bool

	requestRounds int
	failReason    string
}

// NewNegotiation creates a Negotiation that will request desired on
// convergence and call send for every outbound subnegotiation.
func NewNegotiation(send func([]byte), desired Functions) *Negotiation {
	return &Negotiation{Send: send, Desired: desired}
}

// Begin starts the handshake by sending SEND DEVICE-TYPE.
func (n *Negotiation) Begin() {
	n.Phase = PhaseDeviceType
	n.Send([]byte{SubDeviceType, SubSend})
}

// HandleSubnegotiation processes one inbound TN3270E subnegotiation
// payload (the bytes between IAC SB TN3270E and IAC SE).
func (n *Negotiation) HandleSubnegotiation(payload []byte) error {
	if len(payload) < 2 {
		return fmt.Errorf("tn3270e: subnegotiation too short")
	}
	switch payload[0] {
	case SubDeviceType:
		return n.handleDeviceType(payload[1:])
	case SubFunctions:
		return n.handleFunctions(payload[1:])
	}
	return fmt.Errorf("tn3270e: unrecognized subnegotiation sub-command 0x%02x", payload[0])
}

func (n *Negotiation) handleDeviceType(rest []byte) error {
	if len(rest) == 0 {
		return fmt.Errorf("tn3270e: DEVICE-TYPE subnegotiation truncated")
	}
	switch rest[0] {
	case SubIs:
		body := rest[1:]
		typeBytes := body
		lu := ""
		if idx := bytes.IndexByte(body, SubConnect); idx >= 0 {
			typeBytes = body[:idx]
			lu = string(body[idx+1:])
		}
		devType := string(typeBytes)
		if !SupportsDeviceType(devType) {
			n.Phase = PhaseFailed
			n.failReason = fmt.Sprintf("unsupported device type %q", devType)
			return fmt.Errorf("tn3270e: %s", n.failReason)
		}
		n.DeviceType = devType
		n.LUName = lu
		n.IsPrinterLU = isPrinterDeviceType(devType) || isPrinterLUName(lu)
		n.Phase = PhaseFunctions
		n.Send(append([]byte{SubFunctions, SubRequest}, byte(n.Desired)))
		return nil
	case SubReject:
		n.Phase = PhaseFailed
		reason := byte(0xFF)
		if len(rest) > 1 {
			reason = rest[1]
		}
		n.failReason = fmt.Sprintf("device-type rejected, reason 0x%02x", reason)
		return fmt.Errorf("tn3270e: %s", n.failReason)
	}
	return fmt.Errorf("tn3270e: unrecognized DEVICE-TYPE sub-command 0x%02x", rest[0])
}

func (n *Negotiation) handleFunctions(rest []byte) error {
	if len(rest) == 0 {
		return fmt.Errorf("tn3270e: FUNCTIONS subnegotiation truncated")
	}
	offered := Functions(0)
	if len(rest) > 1 {
		offered = Functions(rest[1])
	}
	switch rest[0] {
	case SubIs:
		n.requestRounds++
		if offered == n.Desired || n.requestRounds >= 2 {
			n.Functions = offered
			n.Phase = PhaseBound
			return nil
		}
		n.Desired = n.Desired.Intersect(offered)
		n.Send(append([]byte{SubFunctions, SubRequest}, byte(n.Desired)))
		return nil
	case SubRequest:
		result := n.Desired.Intersect(offered)
		n.Functions = result
		n.Phase = PhaseBound
		n.Send(append([]byte{SubFunctions, SubIs}, byte(result)))
		return nil
	}
	return fmt.Errorf("tn3270e: unrecognized FUNCTIONS sub-command 0x%02x", rest[0])
}

// Bound reports whether the handshake reached agreement.
func (n *Negotiation) Bound() bool { return n.Phase == PhaseBound }

// Failed reports whether the handshake aborted, and why.
func (n *Negotiation) Failed() (bool, string) { return n.Phase == PhaseFailed, n.failReason }

func isPrinterDeviceType(devType string) bool {
	return strings.Contains(devType, "3287")
}

func isPrinterLUName(lu string) bool {
	u := strings.ToUpper(lu)
	return strings.Contains(u, "PRT") || strings.Contains(u, "PRN")
}
