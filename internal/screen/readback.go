package screen

import "github.com/bcrandall/tn3270e/internal/addressing"

// 3270 order codes used when encoding outbound data (spec §4.3).
const (
	orderSBA byte = 0x11
	orderSF  byte = 0x1D
	orderSA  byte = 0x28
)

// ReadBuffer encodes the entire presentation space "as-is", in
// left-to-right, top-to-bottom cell order: attribute cells are
// emitted inline (order 0x1D SF byte, with the basic attribute byte
// run through the 12-bit scramble table) and data cells are emitted
// as their raw EBCDIC code points, with no SBA orders at all. SA
// orders are inserted before a data cell whenever its extended
// attribute plane differs from the previous cell's (spec §4.5).
func (s *Screen) ReadBuffer(mode addressing.Mode) []byte {
	out := make([]byte, 0, len(s.cells))
	var current ExtendedAttr
	for _, c := range s.cells {
		if c.IsAttr {
			out = append(out, orderSF, addressing.Encode6(c.Code))
			current = ExtendedAttr{}
			continue
		}
		out = append(out, emitSAChanges(current, c.Ext)...)
		current = c.Ext
		out = append(out, c.Code)
	}
	return out
}

// emitSAChanges returns the SA orders needed to move the pending
// extended-attribute state from prev to next, one order per plane
// that actually changed.
func emitSAChanges(prev, next ExtendedAttr) []byte {
	var out []byte
	add := func(xType, pv, nv byte) {
		if pv != nv {
			out = append(out, orderSA, xType, nv)
		}
	}
	add(XAHighlighting, prev.Highlight, next.Highlight)
	add(XAForeground, prev.Foreground, next.Foreground)
	add(XABackground, prev.Background, next.Background)
	add(XACharSet, prev.CharSet, next.CharSet)
	add(XAValidation, prev.Validation, next.Validation)
	add(XATransparency, prev.Transparency, next.Transparency)
	return out
}

// ReadModified encodes a Read Modified / Read Modified All reply:
// for each field with MDT set, an SBA to its first data position
// followed by its data cells up to (not including) the next field's
// attribute cell, with trailing nulls trimmed (spec §4.5). Fields are
// visited in chain order, not buffer order is irrelevant since the
// chain already is buffer order.
func (s *Screen) ReadModified(mode addressing.Mode) []byte {
	return s.readModified(mode, true)
}

// ReadModifiedAll is Read Modified All: every field is encoded
// regardless of its MDT bit (spec §4.5).
func (s *Screen) ReadModifiedAll(mode addressing.Mode) []byte {
	return s.readModified(mode, false)
}

func (s *Screen) readModified(mode addressing.Mode, onlyModified bool) []byte {
	var out []byte
	for _, f := range s.fields {
		if onlyModified && !f.MDT {
			continue
		}
		start := s.firstDataPos(f)
		end := s.fieldEnd(f)
		data := s.fieldData(start, end)
		if s.cells[start].IsAttr {
			// No data cells: the next field's attribute cell
			// immediately follows this one.
			data = nil
		}
		data = trimTrailingNulls(data)
		addr := addressing.Encode(start, mode)
		out = append(out, orderSBA, addr[0], addr[1])
		out = append(out, data...)
	}
	return out
}

// fieldData collects the raw EBCDIC bytes from start to end inclusive
// (wrapping), skipping nothing since a field never contains an
// embedded attribute cell other than at its own start.
func (s *Screen) fieldData(start, end int) []byte {
	n := end - start
	if n < 0 {
		n += s.Len()
	}
	n++
	out := make([]byte, 0, n)
	pos := start
	for i := 0; i < n; i++ {
		out = append(out, s.cells[pos].Code)
		pos = s.wrap(pos + 1)
	}
	return out
}

func trimTrailingNulls(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0x00 {
		i--
	}
	return b[:i]
}
