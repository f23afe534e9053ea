package stream

import "fmt"

// parseStructuredFields walks a Write Structured Field record body: a
// sequence of (2-byte length, id byte, payload) blocks, where length
// counts itself (spec §4.3). Unknown IDs are skipped by length,
// matching real-terminal forgiveness for structured fields this
// module doesn't act on.
func (p *Parser) parseStructuredFields(data []byte) error {
	pos := 0
	for pos < len(data) {
		if len(data)-pos < 3 {
			return fmt.Errorf("stream: structured field header truncated")
		}
		length := int(data[pos])<<8 | int(data[pos+1])
		if length < 3 {
			return fmt.Errorf("stream: structured field length %d too small", length)
		}
		if pos+length > len(data) {
			return fmt.Errorf("stream: structured field truncated, wanted %d bytes", length)
		}
		id := data[pos+2]
		body := data[pos+3 : pos+length]

		switch id {
		case SFReadPartition:
			p.handleReadPartition(body)
		case SFEraseReset:
			p.Screen.Clear()
		case SFOutbound3270DS:
			// body is itself an encapsulated W/EW/EWA/EAU record.
			if _, err := p.ParseRecord(body); err != nil {
				return err
			}
		case SFSetReplyMode, SFActivatePartition:
			// Recognized but not modeled: this module has one
			// presentation-space partition and one reply mode.
		}

		pos += length
	}
	return nil
}

// handleReadPartition dispatches a Read Partition structured field's
// Query / Query List sub-type. The actual Query Reply bytes are built
// by QueryReply, since assembling the reply and sending it over the
// transport is the session layer's job; the parser only records that
// a reply is owed.
func (p *Parser) handleReadPartition(body []byte) {
	if len(body) < 2 || (body[1] != RPQuery && body[1] != RPQueryList) {
		return
	}
	p.pendingQuery = true
}

// QueryReply builds the Read Partition Query reply: a WSF-style
// sequence of structured fields enumerating this module's fixed
// capability set (spec §6 required IDs: Summary, Usable Area,
// Character Sets, Color, Highlighting, Reply Modes, Implicit
// Partition).
func (p *Parser) QueryReply() []byte {
	rows, cols := p.Screen.Size()
	var out []byte

	summary := []byte{QRUsableArea, QRCharacterSets, QRColor, QRHighlighting, QRReplyModes, QRImplicitPartition}
	out = append(out, sfBlock(QRSummary, summary)...)

	usableArea := []byte{
		0x01, 0x00, // 12/14-bit addressing supported
		byte(cols >> 8), byte(cols), byte(rows >> 8), byte(rows),
		byte(cols >> 8), byte(cols), byte(rows >> 8), byte(rows),
		0x00, 0x00, 0x00, 0x00, 0x00,
	}
	out = append(out, sfBlock(QRUsableArea, usableArea)...)

	out = append(out, sfBlock(QRCharacterSets, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})...)
	out = append(out, sfBlock(QRColor, []byte{0x00, 0x08})...)
	out = append(out, sfBlock(QRHighlighting, []byte{0x05})...)
	out = append(out, sfBlock(QRReplyModes, []byte{0x00, 0x01, 0x02})...)
	out = append(out, sfBlock(QRImplicitPartition, []byte{
		0x0A, 0x01,
		byte(cols >> 8), byte(cols), byte(rows >> 8), byte(rows),
		byte(cols >> 8), byte(cols), byte(rows >> 8), byte(rows),
	})...)

	return out
}

func sfBlock(id byte, payload []byte) []byte {
	length := len(payload) + 3
	return append([]byte{byte(length >> 8), byte(length), id}, payload...)
}
