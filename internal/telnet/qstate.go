package telnet

// qstate is one side's state in the RFC 1143 Q-method: NO/YES mean
// the option is settled off/on; WANTNO/WANTYES mean a request is in
// flight, with "opposite" recording that the desired end state
// flipped again while waiting for the peer's answer (so the method
// never needs more than one request in flight and never loops).
type qstate int

const (
	qNo qstate = iota
	qYes
	qWantNo
	qWantYes
)

// side tracks one direction's negotiation state for one option: "us"
// (whether we perform the option, driven by WILL/WONT we send and
// DO/DONT we receive) or "him" (whether the peer performs it, driven
// by DO/DONT we send and WILL/WONT we receive).
type side struct {
	state    qstate
	opposite bool
}

// enable requests this side move to YES. send reports whether an
// outbound request byte (WILL or DO, depending on which side this is)
// must be sent.
func (s *side) enable() (send bool) {
	switch s.state {
	case qNo:
		s.state = qWantYes
		return true
	case qWantNo:
		s.opposite = true
		return false
	case qWantYes:
		if s.opposite {
			s.opposite = false
		}
		return false
	default: // qYes
		return false
	}
}

// disable requests this side move to NO.
func (s *side) disable() (send bool) {
	switch s.state {
	case qYes:
		s.state = qWantNo
		return true
	case qWantYes:
		s.opposite = true
		return false
	case qWantNo:
		if s.opposite {
			s.opposite = false
		}
		return false
	default: // qNo
		return false
	}
}

// recvAgree processes the peer agreeing to enable this side (a WILL
// we receive for "him", or a DO we receive for "us"). wantEnabled is
// whether we are willing to have the option on at all (for an
// unsolicited offer, state NO). ack reports an outbound byte must be
// sent (the command is WILL/DO to confirm, or WONT/DONT to refuse).
func (s *side) recvAgree(wantEnabled bool) (ack bool, refuse bool) {
	switch s.state {
	case qNo:
		if wantEnabled {
			s.state = qYes
			return true, false
		}
		return true, true
	case qWantNo:
		if s.opposite {
			s.state = qYes
			s.opposite = false
			return false, false
		}
		s.state = qNo
		return false, false
	case qWantYes:
		if s.opposite {
			s.state = qWantNo
			s.opposite = false
			return true, true
		}
		s.state = qYes
		return false, false
	default: // qYes: peer re-confirming, nothing to do
		return false, false
	}
}

// recvRefuse processes the peer refusing or turning off this side (a
// WONT we receive for "him", or a DONT we receive for "us"). ack
// reports an outbound WONT/DONT must be sent to confirm the turn-off.
func (s *side) recvRefuse() (ack bool) {
	switch s.state {
	case qYes:
		s.state = qNo
		return true
	case qWantNo:
		if s.opposite {
			s.state = qWantYes
			s.opposite = false
			return true
		}
		s.state = qNo
		return false
	case qWantYes:
		s.state = qNo
		s.opposite = false
		return false
	default: // qNo
		return false
	}
}

// enabled reports whether this side has settled at YES.
func (s *side) enabled() bool { return s.state == qYes }
