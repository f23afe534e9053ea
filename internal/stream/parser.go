package stream

import (
	"fmt"

	"github.com/bcrandall/tn3270e/internal/addressing"
	"github.com/bcrandall/tn3270e/internal/codepage"
	"github.com/bcrandall/tn3270e/internal/screen"
)

// ReplyKind tells the session what kind of reply the host's record
// demands, if any.
type ReplyKind int

const (
	ReplyNone ReplyKind = iota
	ReplyReadBuffer
	ReplyReadModified
	ReplyReadModifiedAll
	ReplyQuery
)

// Result is what ParseRecord learned about one inbound record: which
// command it was and what the session owes the host in response.
type Result struct {
	Command Command
	WCC     byte
	Reply   ReplyKind
}

// Parser decodes inbound 3270 data-stream records and applies them to
// a screen.Screen (spec §4.3). It holds no state across records
// except the fields the caller configures once (alternate size,
// extended-addressing capability).
type Parser struct {
	Screen   *screen.Screen
	Codepage *codepage.Codepage

	// AltRows/AltCols is the alternate presentation-space size used by
	// Erase/Write Alternate, negotiated at bind time.
	AltRows, AltCols int

	// Allow16 reports whether 16-bit addressing was negotiated. The
	// parser itself does not read it: addressing.Decode picks each
	// address's encoding from its leading byte.
	Allow16 bool

	pendingQuery bool
}

// NewParser builds a Parser bound to scr, decoding data bytes with cp.
func NewParser(scr *screen.Screen, cp *codepage.Codepage) *Parser {
	return &Parser{Screen: scr, Codepage: cp}
}

// ParseRecord applies one inbound record to the screen. A record-level
// error (truncated order, unknown order byte) is returned but the
// screen keeps whatever was already applied, per spec §4.3 "Failures"
// -- this is tolerated, not a protocol-fatal condition.
func (p *Parser) ParseRecord(rec []byte) (Result, error) {
	if len(rec) == 0 {
		return Result{}, fmt.Errorf("stream: empty record")
	}
	cmd := DecodeCommand(rec[0])
	if cmd == CmdUnknown {
		return Result{}, fmt.Errorf("stream: unknown command byte 0x%02x, record discarded", rec[0])
	}

	switch cmd {
	case CmdReadBuffer:
		return Result{Command: cmd, Reply: ReplyReadBuffer}, nil
	case CmdReadModified:
		return Result{Command: cmd, Reply: ReplyReadModified}, nil
	case CmdReadModifiedAll:
		return Result{Command: cmd, Reply: ReplyReadModifiedAll}, nil
	case CmdEraseAllUnprotected:
		p.Screen.EraseAllUnprotected()
		return Result{Command: cmd}, nil
	case CmdWriteStructuredField:
		p.pendingQuery = false
		err := p.parseStructuredFields(rec[1:])
		reply := ReplyNone
		if p.pendingQuery {
			reply = ReplyQuery
		}
		return Result{Command: cmd, Reply: reply}, err
	}

	// Write / Erase-Write / Erase-Write-Alternate: WCC byte, then body.
	if len(rec) < 2 {
		return Result{Command: cmd}, fmt.Errorf("stream: record truncated, missing WCC")
	}
	wcc := rec[1]

	switch cmd {
	case CmdEraseWrite:
		p.Screen.Clear()
	case CmdEraseWriteAlternate:
		if p.AltRows > 0 && p.AltCols > 0 {
			p.Screen.Resize(p.AltRows, p.AltCols)
		} else {
			p.Screen.Clear()
		}
	}

	err := p.processBody(rec[2:], wcc)

	if wcc&WCCResetMDT != 0 {
		p.Screen.ResetMDT()
	}
	if wcc&WCCKeyboardRestore != 0 {
		p.Screen.Inhibited = false
		p.Screen.InhibitReason = screen.NotInhibited
	}

	return Result{Command: cmd, WCC: wcc}, err
}

type body struct {
	data []byte
	pos  int
}

func (b *body) remaining() int { return len(b.data) - b.pos }

func (b *body) take(n int) ([]byte, bool) {
	if b.remaining() < n {
		return nil, false
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, true
}

func (b *body) next() (byte, bool) {
	if b.remaining() < 1 {
		return 0, false
	}
	v := b.data[b.pos]
	b.pos++
	return v, true
}

// processBody walks the order/data stream of a W/EW/EWA record,
// mutating p.Screen as it goes (spec §4.3).
func (p *Parser) processBody(data []byte, wcc byte) error {
	b := &body{data: data}
	rows, cols := p.Screen.Size()
	size := rows * cols

	writePtr := 0
	var pendingExt screen.ExtendedAttr
	var pendingGE bool

	for b.remaining() > 0 {
		o, _ := b.next()

		if !isOrder(o) {
			// Plain EBCDIC data byte.
			ge := pendingGE
			pendingGE = false
			p.Screen.WriteCell(writePtr, o, ge, pendingExt)
			writePtr = p.wrapAddr(writePtr+1, size)
			continue
		}

		if o != OrderGE {
			// GE applies only to a data byte; an order cancels it.
			pendingGE = false
		}

		switch o {
		case OrderGE:
			pendingGE = true

		case OrderSBA:
			raw, ok := b.take(2)
			if !ok {
				return fmt.Errorf("stream: SBA truncated")
			}
			writePtr = addressing.Decode([2]byte{raw[0], raw[1]}, size)

		case OrderIC:
			p.Screen.SetCursor(writePtr)

		case OrderSF:
			attr, ok := b.next()
			if !ok {
				return fmt.Errorf("stream: SF truncated")
			}
			p.Screen.SetFieldAttr(writePtr, addressing.Decode6(attr))
			writePtr = p.wrapAddr(writePtr+1, size)

		case OrderSFE:
			pairs, err := p.readPairs(b)
			if err != nil {
				return err
			}
			p.Screen.SetFieldAttrExtended(writePtr, pairs)
			writePtr = p.wrapAddr(writePtr+1, size)

		case OrderSA:
			xType, ok1 := b.next()
			xValue, ok2 := b.next()
			if !ok1 || !ok2 {
				return fmt.Errorf("stream: SA truncated")
			}
			pendingExt.Apply(xType, xValue)

		case OrderMF:
			pairs, err := p.readPairs(b)
			if err != nil {
				return err
			}
			p.Screen.ModifyField(writePtr, pairs)

		case OrderRA:
			raw, ok := b.take(2)
			if !ok {
				return fmt.Errorf("stream: RA truncated")
			}
			stop := addressing.Decode([2]byte{raw[0], raw[1]}, size)
			fillGE := false
			fill, ok := b.next()
			if !ok {
				return fmt.Errorf("stream: RA truncated, missing fill byte")
			}
			if fill == OrderGE {
				fill, ok = b.next()
				if !ok {
					return fmt.Errorf("stream: RA truncated, missing GE fill byte")
				}
				fillGE = true
			}
			p.Screen.RepeatToAddress(writePtr, stop, fill, fillGE, false)
			writePtr = stop

		case OrderEUA:
			raw, ok := b.take(2)
			if !ok {
				return fmt.Errorf("stream: EUA truncated")
			}
			stop := addressing.Decode([2]byte{raw[0], raw[1]}, size)
			p.Screen.RepeatToAddress(writePtr, stop, 0x00, false, true)
			writePtr = stop

		case OrderPT:
			if f := p.Screen.NextUnprotectedField(writePtr); f != nil {
				writePtr = p.wrapAddr(f.Start+1, size)
			}

		default:
			return fmt.Errorf("stream: unknown order byte 0x%02x", o)
		}
	}
	return nil
}

func (p *Parser) wrapAddr(addr, size int) int {
	if size <= 0 {
		return 0
	}
	addr %= size
	if addr < 0 {
		addr += size
	}
	return addr
}

// readPairs decodes an SFE/MF attribute-pair list: one count byte N
// followed by N (type,value) pairs.
func (p *Parser) readPairs(b *body) ([]screen.TypeValue, error) {
	n, ok := b.next()
	if !ok {
		return nil, fmt.Errorf("stream: attribute-pair count truncated")
	}
	pairs := make([]screen.TypeValue, 0, n)
	for i := 0; i < int(n); i++ {
		xType, ok1 := b.next()
		xValue, ok2 := b.next()
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("stream: attribute pair truncated")
		}
		pairs = append(pairs, screen.TypeValue{Type: xType, Value: xValue})
	}
	return pairs, nil
}
