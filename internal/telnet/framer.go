package telnet

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// Framer reads Telnet bytes off a transport, interprets IAC commands
// inline (feeding them to a Negotiator), and delivers one 3270 record
// per IAC-EOR boundary. It mirrors the incremental-byte-cursor style
// of the teacher pack's telnet.go, generalized from a line-oriented
// terminal connection to TN3270's record-oriented framing (spec
// §4.1).
type Framer struct {
	r          *bufio.Reader
	w          io.Writer
	wmu        sync.Mutex
	Negotiator *Negotiator
}

// NewFramer wraps conn for Telnet/TN3270 record framing.
func NewFramer(conn io.ReadWriter) *Framer {
	f := &Framer{r: bufio.NewReaderSize(conn, 4096), w: conn}
	f.Negotiator = NewNegotiator(func(cmd, opt byte) { f.sendCommand(cmd, opt) })
	return f
}

func (f *Framer) sendCommand(cmd, opt byte) {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	f.w.Write([]byte{IAC, cmd, opt})
}

// ReadRecord reads and interprets bytes until an IAC-EOR boundary,
// handling option negotiation and subnegotiation inline, and returns
// the accumulated data bytes (IAC-IAC already unescaped) as one
// record.
func (f *Framer) ReadRecord() ([]byte, error) {
	var rec []byte
	for {
		data, eor, err := f.Step()
		if err != nil {
			return nil, err
		}
		if eor {
			return rec, nil
		}
		rec = append(rec, data...)
	}
}

// Step consumes exactly one Telnet element from the connection: either a
// single data byte, or one fully-consumed IAC command (option negotiation,
// subnegotiation, or EOR), dispatching to the Negotiator inline. It lets a
// caller drive option negotiation to completion without needing a full
// IAC-EOR-terminated record to exist yet (spec §4.1 "Errors": negotiation
// happens before the first 3270 record is ever sent).
func (f *Framer) Step() (data []byte, eor bool, err error) {
	b, err := f.r.ReadByte()
	if err != nil {
		return nil, false, err
	}
	if b != IAC {
		return []byte{b}, false, nil
	}

	cmd, err := f.r.ReadByte()
	if err != nil {
		return nil, false, err
	}
	switch cmd {
	case IAC:
		return []byte{IAC}, false, nil
	case EOR:
		return nil, true, nil
	case WILL:
		if opt, err := f.r.ReadByte(); err == nil {
			f.Negotiator.RecvWill(opt)
		} else {
			return nil, false, err
		}
	case WONT:
		if opt, err := f.r.ReadByte(); err == nil {
			f.Negotiator.RecvWont(opt)
		} else {
			return nil, false, err
		}
	case DO:
		if opt, err := f.r.ReadByte(); err == nil {
			f.Negotiator.RecvDo(opt)
		} else {
			return nil, false, err
		}
	case DONT:
		if opt, err := f.r.ReadByte(); err == nil {
			f.Negotiator.RecvDont(opt)
		} else {
			return nil, false, err
		}
	case SB:
		opt, payload, err := f.readSubnegotiation()
		if err != nil {
			return nil, false, fmt.Errorf("telnet: malformed subnegotiation: %w", err)
		}
		if f.Negotiator.OnSubnegotiation != nil {
			f.Negotiator.OnSubnegotiation(opt, payload)
		}
	case GA:
		// Go-ahead is meaningless once SGA is negotiated; ignore.
	default:
		// Unrecognized command byte: ignore rather than fail the
		// connection, per RFC 1143 forgiveness.
	}
	return nil, false, nil
}

// readSubnegotiation collects the option byte and payload of an IAC
// SB <opt> ... IAC SE block, unescaping IAC-IAC within the payload.
func (f *Framer) readSubnegotiation() (opt byte, payload []byte, err error) {
	opt, err = f.r.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	for {
		b, err := f.r.ReadByte()
		if err != nil {
			return 0, nil, err
		}
		if b != IAC {
			payload = append(payload, b)
			continue
		}
		cmd, err := f.r.ReadByte()
		if err != nil {
			return 0, nil, err
		}
		if cmd == SE {
			return opt, payload, nil
		}
		if cmd == IAC {
			payload = append(payload, IAC)
			continue
		}
		// Any other command inside a subnegotiation is malformed; bail
		// out and let the caller discard it, per spec §4.1 "Errors".
		return 0, nil, fmt.Errorf("unexpected IAC %d inside subnegotiation", cmd)
	}
}

// WriteCommand sends a bare two-byte IAC command (no option byte),
// e.g. IAC IP for the 3270 ATTN key.
func (f *Framer) WriteCommand(cmd byte) error {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	_, err := f.w.Write([]byte{IAC, cmd})
	return err
}

// WriteRecord frames rec as one 3270 record: IAC-IAC escaped data
// followed by IAC EOR.
func (f *Framer) WriteRecord(rec []byte) error {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	buf := make([]byte, 0, len(rec)+4)
	for _, b := range rec {
		buf = append(buf, b)
		if b == IAC {
			buf = append(buf, IAC)
		}
	}
	buf = append(buf, IAC, EOR)
	_, err := f.w.Write(buf)
	return err
}

// WriteSubnegotiation sends IAC SB <opt> <payload> IAC SE, escaping
// any literal IAC bytes in payload.
func (f *Framer) WriteSubnegotiation(opt byte, payload []byte) error {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	buf := []byte{IAC, SB, opt}
	for _, b := range payload {
		buf = append(buf, b)
		if b == IAC {
			buf = append(buf, IAC)
		}
	}
	buf = append(buf, IAC, SE)
	_, err := f.w.Write(buf)
	return err
}
