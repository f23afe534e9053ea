package telnet

// optionPair holds both directions of Q-method state for one option.
type optionPair struct {
	us, him side
}

// Negotiator tracks per-option Q-method state for every option this
// module cares about and derives the operating mode from the
// outcome (spec §4.1 "Mode election"). It does not own a transport;
// callers drive it with Recv* methods and collect outbound bytes via
// Out.
type Negotiator struct {
	options map[byte]*optionPair

	// Out receives every outbound 3-byte IAC command this negotiator
	// produces (IAC, cmd, opt), in order. The caller (the session's
	// transport loop) is responsible for writing it to the wire.
	Out func(cmd, opt byte)

	// OnSubnegotiation is called with the raw (IAC-unescaped) payload
	// of an IAC SB <opt> ... IAC SE block.
	OnSubnegotiation func(opt byte, payload []byte)

	tn3270eBound bool
}

// NewNegotiator creates a Negotiator that calls out for every
// outbound command byte pair it needs to send.
func NewNegotiator(out func(cmd, opt byte)) *Negotiator {
	return &Negotiator{options: make(map[byte]*optionPair), Out: out}
}

func (n *Negotiator) pair(opt byte) *optionPair {
	p, ok := n.options[opt]
	if !ok {
		p = &optionPair{}
		n.options[opt] = p
	}
	return p
}

// RequestUs offers WILL <opt>: "we will perform this option".
func (n *Negotiator) RequestUs(opt byte) {
	if n.pair(opt).us.enable() {
		n.Out(WILL, opt)
	}
}

// RequestHim asks DO <opt>: "you should perform this option".
func (n *Negotiator) RequestHim(opt byte) {
	if n.pair(opt).him.enable() {
		n.Out(DO, opt)
	}
}

// WithdrawUs asks to turn our side of opt off (WONT).
func (n *Negotiator) WithdrawUs(opt byte) {
	if n.pair(opt).us.disable() {
		n.Out(WONT, opt)
	}
}

// WithdrawHim asks to turn the peer's side of opt off (DONT).
func (n *Negotiator) WithdrawHim(opt byte) {
	if n.pair(opt).him.disable() {
		n.Out(DONT, opt)
	}
}

// RecvWill processes an inbound WILL <opt> (the peer offering to
// perform opt themselves -- this affects the "him" state).
func (n *Negotiator) RecvWill(opt byte) {
	ack, refuse := n.pair(opt).him.recvAgree(n.wantHim(opt))
	if ack {
		if refuse {
			n.Out(DONT, opt)
		} else {
			n.Out(DO, opt)
		}
	}
}

// RecvWont processes an inbound WONT <opt>.
func (n *Negotiator) RecvWont(opt byte) {
	if n.pair(opt).him.recvRefuse() {
		n.Out(DONT, opt)
	}
}

// RecvDo processes an inbound DO <opt> (the peer asking us to
// perform opt -- this affects the "us" state).
func (n *Negotiator) RecvDo(opt byte) {
	ack, refuse := n.pair(opt).us.recvAgree(n.wantUs(opt))
	if ack {
		if refuse {
			n.Out(WONT, opt)
		} else {
			n.Out(WILL, opt)
		}
	}
}

// RecvDont processes an inbound DONT <opt>.
func (n *Negotiator) RecvDont(opt byte) {
	if n.pair(opt).us.recvRefuse() {
		n.Out(WONT, opt)
	}
}

// wantUs/wantHim answer "if the peer spontaneously offers this
// option, do we want it enabled?" -- true for every option this
// module ever negotiates, since RequestUs/RequestHim are only ever
// called for options the module supports (RFC 1143 "unknown option:
// respond DONT/WONT").
func (n *Negotiator) wantUs(opt byte) bool  { return n.supported(opt) }
func (n *Negotiator) wantHim(opt byte) bool { return n.supported(opt) }

func (n *Negotiator) supported(opt byte) bool {
	switch opt {
	case OptBinary, OptSGA, OptTM, OptTType, OptEOR, OptTN3270E:
		return true
	default:
		return false
	}
}

// UsEnabled/HimEnabled report the settled Q-method state for opt.
func (n *Negotiator) UsEnabled(opt byte) bool  { return n.pair(opt).us.enabled() }
func (n *Negotiator) HimEnabled(opt byte) bool { return n.pair(opt).him.enabled() }

// BindTN3270E records that the TN3270E device-type/functions
// handshake (spec §4.2) completed successfully.
func (n *Negotiator) BindTN3270E() { n.tn3270eBound = true }

// Mode derives the operating mode from the settled option states
// (spec §4.1 "Mode election"): NVT until BINARY+EOR+TTYPE are YES on
// both sides, then 3270-basic, then TN3270E once the TN3270E option
// is YES on both sides and the device-type handshake has bound.
func (n *Negotiator) Mode() Mode {
	basic := n.UsEnabled(OptBinary) && n.HimEnabled(OptBinary) &&
		n.UsEnabled(OptEOR) && n.HimEnabled(OptEOR) &&
		n.UsEnabled(OptTType) && n.HimEnabled(OptTType)
	if !basic {
		return ModeNVT
	}
	if n.UsEnabled(OptTN3270E) && n.HimEnabled(OptTN3270E) && n.tn3270eBound {
		return ModeTN3270E
	}
	return ModeTN3270Basic
}
