// Package screen implements the 3270 presentation space: a 2-D grid
// of EBCDIC cells with attribute planes, a field chain, cursor, and
// AID state (spec §3, §4.4).
package screen

import (
	"sort"

	"github.com/bcrandall/tn3270e/internal/codepage"
)

// InhibitReason explains why the keyboard is locked after a rejected
// operator action (spec §4.4 "Operator input contract").
type InhibitReason int

const (
	NotInhibited InhibitReason = iota
	InhibitProtected
	InhibitNumeric
	InhibitTooLong
	InhibitNoField
)

// Cell is a single position in the presentation space.
type Cell struct {
	// Code is the EBCDIC code point, or the raw attribute byte when
	// IsAttr is true.
	Code byte

	// IsAttr marks this cell as holding a Start-Field attribute byte
	// rather than data (spec §3, invariant 3 in §4.4).
	IsAttr bool

	// GE marks that Code should be interpreted through the Graphic
	// Escape alternate character set.
	GE bool

	Ext ExtendedAttr
}

// AIDState is the last Attention Identifier raised by an operator
// action, plus the cursor position at that moment (spec §3).
type AIDState struct {
	AID       byte
	CursorPos int
	Armed     bool // true from key press until the reply has been sent
}

// Screen is the authoritative presentation space: cells, field chain,
// cursor, and AID state. It is exclusively owned by one session (spec
// §5 "Shared resources").
type Screen struct {
	rows, cols int
	cells      []Cell

	// fields is kept sorted by Start address. Owner lookup is a
	// predecessor search (spec §9 "Field chain without parent
	// pointers").
	fields []*Field

	cursor int

	aid AIDState

	Inhibited     bool
	InhibitReason InhibitReason

	codepage *codepage.Codepage
}

// New creates a presentation space of the given size, cleared to
// nulls with the implicit default field.
func New(rows, cols int, cp *codepage.Codepage) *Screen {
	if cp == nil {
		cp = codepage.CP037
	}
	s := &Screen{codepage: cp}
	s.Resize(rows, cols)
	return s
}

// Size returns the current dimensions.
func (s *Screen) Size() (rows, cols int) { return s.rows, s.cols }

// Len returns rows*cols.
func (s *Screen) Len() int { return s.rows * s.cols }

// Resize changes the presentation space dimensions and clears it
// (used by Erase/Write Alternate, spec §4.3).
func (s *Screen) Resize(rows, cols int) {
	s.rows, s.cols = rows, cols
	s.cells = make([]Cell, rows*cols)
	s.fields = nil
	s.cursor = 0
	s.aid = AIDState{}
	s.Inhibited = false
	s.InhibitReason = NotInhibited
}

// Clear resets the buffer to nulls, removes all fields except the
// implicit default, and positions the cursor at 0 (spec §4.3
// Erase/Write and §8 "EW clears cells to 0x00 and removes all fields
// except the implicit default").
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{}
	}
	s.fields = nil
	s.cursor = 0
	s.Inhibited = false
	s.InhibitReason = NotInhibited
}

func (s *Screen) wrap(addr int) int {
	n := s.Len()
	if n == 0 {
		return 0
	}
	addr %= n
	if addr < 0 {
		addr += n
	}
	return addr
}

// Cell returns a copy of the cell at addr (wrapped).
func (s *Screen) Cell(addr int) Cell {
	return s.cells[s.wrap(addr)]
}

// Cursor returns the current cursor address. Invariant (spec §4.4.4):
// 0 <= cursor < rows*cols always holds.
func (s *Screen) Cursor() int { return s.cursor }

// SetCursor moves the cursor, wrapping out-of-range addresses into
// the valid range rather than violating the cursor invariant.
func (s *Screen) SetCursor(addr int) {
	s.cursor = s.wrap(addr)
}

// AID returns the current AID state.
func (s *Screen) AID() AIDState { return s.aid }

// Fields returns a snapshot of the field chain in buffer order, safe
// for a caller to retain after further mutation of s (spec §6
// "screen_snapshot() -> immutable read of ... fields").
func (s *Screen) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = *f
	}
	return out
}

// RaiseAID freezes the AID and current cursor address for the next
// read, per spec §3 "AID state ... cleared when host processes and
// sends a new Write."
func (s *Screen) RaiseAID(aid byte) {
	s.aid = AIDState{AID: aid, CursorPos: s.cursor, Armed: true}
}

// ClearAID disarms the AID state; called once the host has consumed
// the reply.
func (s *Screen) ClearAID() {
	s.aid.Armed = false
}

// ---- field chain ----

// fieldIndex returns the index in s.fields of the field starting
// exactly at addr, or -1.
func (s *Screen) fieldIndex(addr int) int {
	i := sort.Search(len(s.fields), func(i int) bool { return s.fields[i].Start >= addr })
	if i < len(s.fields) && s.fields[i].Start == addr {
		return i
	}
	return -1
}

// insertIndex returns the sorted insertion point for a new field
// starting at addr.
func (s *Screen) insertIndex(addr int) int {
	return sort.Search(len(s.fields), func(i int) bool { return s.fields[i].Start >= addr })
}

// FindOwner returns the field that owns addr: the field whose start
// is the greatest start <= addr, wrapping around the end of the
// buffer (spec §3). If there are no fields at all, the implicit
// default field owns every position.
func (s *Screen) FindOwner(addr int) *Field {
	if len(s.fields) == 0 {
		return defaultField
	}
	addr = s.wrap(addr)
	i := sort.Search(len(s.fields), func(i int) bool { return s.fields[i].Start > addr })
	if i == 0 {
		// addr is before every field's start: owned by the last field,
		// wrapping around.
		return s.fields[len(s.fields)-1]
	}
	return s.fields[i-1]
}

// NextField returns the first field whose start is strictly after
// addr, wrapping to the first field in the chain if none is found.
func (s *Screen) NextField(addr int) *Field {
	if len(s.fields) == 0 {
		return nil
	}
	addr = s.wrap(addr)
	i := sort.Search(len(s.fields), func(i int) bool { return s.fields[i].Start > addr })
	if i == len(s.fields) {
		return s.fields[0]
	}
	return s.fields[i]
}

// NextUnprotectedField returns the first unprotected field strictly
// after addr, wrapping once around the chain. Returns nil if no
// unprotected field exists.
func (s *Screen) NextUnprotectedField(addr int) *Field {
	if len(s.fields) == 0 {
		return nil
	}
	start := s.NextField(addr)
	f := start
	for {
		if !f.Protected() {
			return f
		}
		f = s.NextField(f.Start)
		if f == start {
			return nil
		}
	}
}

// firstDataPos returns the first data cell (one past the attribute
// cell) of field f.
func (s *Screen) firstDataPos(f *Field) int {
	return s.wrap(f.Start + 1)
}

// removeFieldAt deletes the field descriptor starting at addr, if
// any. Used when a data write overwrites a field-attribute cell
// (spec §4.3 "standard overwrite semantics").
func (s *Screen) removeFieldAt(addr int) {
	i := s.fieldIndex(addr)
	if i < 0 {
		return
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
}

// ---- writes ----

// WriteCell writes a host-originated data byte at addr and advances
// is the caller's job; this never sets MDT (spec §8 "A host Write
// never sets MDT"). Writing over a field-attribute cell removes that
// field from the chain (standard overwrite semantics).
func (s *Screen) WriteCell(addr int, code byte, ge bool, ext ExtendedAttr) {
	addr = s.wrap(addr)
	if s.cells[addr].IsAttr {
		s.removeFieldAt(addr)
	}
	s.cells[addr] = Cell{Code: code, GE: ge, Ext: ext}
}

// SetFieldAttr writes attr as a field-attribute cell at addr (SF) and
// splices a new field descriptor into the chain, replacing any field
// that previously started there. attr is the decoded (unscrambled)
// basic attribute byte; the parser is responsible for running a plain
// SF's raw wire byte through addressing.Decode6 before calling this
// (spec §4.3: SFE's XAAllAttributes pair carries the same bits
// literally, with no such unscrambling).
func (s *Screen) SetFieldAttr(addr int, attr byte) *Field {
	addr = s.wrap(addr)
	s.removeFieldAt(addr) // SF at an existing start replaces it
	f := &Field{Start: addr, Attr: attr &^ attrMDTBit}
	if attr&attrMDTBit != 0 {
		f.MDT = true
	}
	i := s.insertIndex(addr)
	s.fields = append(s.fields, nil)
	copy(s.fields[i+1:], s.fields[i:])
	s.fields[i] = f
	s.cells[addr] = Cell{Code: f.encodedAttr(), IsAttr: true}
	return f
}

// SetFieldAttrExtended is SFE: like SetFieldAttr, but attrs is the
// decoded list of (type,value) extended-attribute pairs; XAAllAttributes
// carries the basic attribute bits.
func (s *Screen) SetFieldAttrExtended(addr int, attrs []TypeValue) *Field {
	f := s.SetFieldAttr(addr, 0)
	for _, tv := range attrs {
		if tv.Type == XAAllAttributes {
			f.Attr = tv.Value &^ attrMDTBit
			if tv.Value&attrMDTBit != 0 {
				f.MDT = true
			}
			continue
		}
		f.Ext.apply(tv.Type, tv.Value)
	}
	s.cells[addr] = Cell{Code: f.encodedAttr(), IsAttr: true, Ext: f.Ext}
	return f
}

// TypeValue is a decoded SFE/SA (type,value) extended-attribute pair.
type TypeValue struct {
	Type  byte
	Value byte
}

// ModifyField applies an MF (Modify Field) order: updates the current
// field's attribute/extended-attribute in place without re-creating
// the field descriptor or moving the write pointer.
func (s *Screen) ModifyField(addr int, attrs []TypeValue) {
	f := s.FindOwner(addr)
	if f == defaultField {
		return
	}
	for _, tv := range attrs {
		if tv.Type == XAAllAttributes {
			mdt := f.MDT
			f.Attr = tv.Value &^ attrMDTBit
			if tv.Value&attrMDTBit != 0 {
				mdt = true
			}
			f.MDT = mdt
			continue
		}
		f.Ext.apply(tv.Type, tv.Value)
	}
	s.cells[f.Start] = Cell{Code: f.encodedAttr(), IsAttr: true, Ext: f.Ext}
}

// SetExtendedAttr applies a single SA (type,value) pair to the cell
// at addr (used by the parser to track the "current" pending
// extended-attribute override as it writes subsequent data cells).
func (s *Screen) SetExtendedAttr(addr int, xaType, value byte) {
	addr = s.wrap(addr)
	s.cells[addr].Ext.apply(xaType, value)
}

// RepeatToAddress fills from start up to (not including) stop with
// fill, wrapping around the buffer; if start==stop the entire buffer
// is filled exactly once (spec §4.3 RA/EUA, §8 scenario 5). When
// unprotectedOnly is true (EUA), only cells inside unprotected fields
// are cleared, and MDT is cleared on every field touched.
func (s *Screen) RepeatToAddress(start, stop int, fill byte, ge bool, unprotectedOnly bool) {
	start = s.wrap(start)
	stop = s.wrap(stop)
	n := s.Len()
	if n == 0 {
		return
	}
	count := stop - start
	if count <= 0 {
		count += n
	}
	if start == stop {
		count = n
	}
	pos := start
	touched := make(map[*Field]bool)
	for i := 0; i < count; i++ {
		owner := s.FindOwner(pos)
		if unprotectedOnly {
			if owner.Protected() {
				pos = s.wrap(pos + 1)
				continue
			}
			touched[owner] = true
		}
		if !s.cells[pos].IsAttr {
			s.cells[pos] = Cell{Code: fill, GE: ge}
		}
		pos = s.wrap(pos + 1)
	}
	if unprotectedOnly {
		for f := range touched {
			f.MDT = false
		}
	}
}

// EraseAllUnprotected implements EAU: within each unprotected field,
// cells are set to null and MDT cleared; cursor moves to the first
// unprotected position (spec §4.3, §8).
func (s *Screen) EraseAllUnprotected() {
	s.RepeatToAddress(0, 0, 0x00, false, true)
	if f := s.NextUnprotectedField(-1); f != nil {
		s.SetCursor(s.firstDataPos(f))
	} else {
		s.SetCursor(0)
	}
	s.Inhibited = false
	s.InhibitReason = NotInhibited
}

// ResetMDT clears the Modified Data Tag on every field (WCC
// reset-MDT, and after a successful Read Modified reply per spec
// §4.5).
func (s *Screen) ResetMDT() {
	for _, f := range s.fields {
		f.MDT = false
	}
}

// ---- operator input ----

// Modify is called by the input processor when operator keystrokes
// land in field f: it is the only path that ever sets MDT (spec §4.4
// invariant 2).
func (s *Screen) Modify(f *Field) {
	if f == defaultField {
		return
	}
	f.MDT = true
}

// Type writes one EBCDIC code point at the cursor on behalf of the
// operator. A cursor on a field-attribute cell is first moved to that
// field's first data cell. Input into a protected field, or non-numeric
// input into a numeric field, is refused with the keyboard locked under
// the matching inhibit reason; otherwise Type marks the owning field
// modified, advances the cursor (auto-skip past the next attribute
// cell), and returns true.
func (s *Screen) Type(code byte, ge bool) bool {
	addr := s.cursor
	if s.cells[addr].IsAttr {
		// Typing at a field-attribute cell auto-advances to the first
		// data cell, per spec §4.4 invariant 3.
		addr = s.firstDataPos(s.FindOwner(addr))
		s.cursor = addr
	}
	f := s.FindOwner(addr)
	if f.Protected() {
		s.lock(InhibitProtected)
		return false
	}
	if f.Numeric() && !isNumericByte(code) {
		s.lock(InhibitNumeric)
		return false
	}
	s.cells[addr] = Cell{Code: code, GE: ge, Ext: s.cells[addr].Ext}
	s.Modify(f)
	s.cursor = s.nextDataPos(addr)
	s.Inhibited = false
	s.InhibitReason = NotInhibited
	return true
}

// nextDataPos advances past addr, skipping over a field-attribute
// cell landed on exactly (auto-skip).
func (s *Screen) nextDataPos(addr int) int {
	n := s.wrap(addr + 1)
	if s.cells[n].IsAttr {
		return s.firstDataPos(s.FindOwner(n))
	}
	return n
}

func (s *Screen) lock(reason InhibitReason) {
	s.Inhibited = true
	s.InhibitReason = reason
}

func isNumericByte(code byte) bool {
	// 0x40 = space, 0xF0-0xF9 = digits, 0x4E/0x60 = +/-, per 3270
	// numeric-field validation.
	return code == 0x40 || code == 0x4E || code == 0x60 || (code >= 0xF0 && code <= 0xF9)
}

// Backspace moves the cursor back one position within the current
// field (does not erase).
func (s *Screen) Backspace() {
	f := s.FindOwner(s.cursor)
	first := s.firstDataPos(f)
	if s.cursor == first {
		return
	}
	s.cursor = s.wrap(s.cursor - 1)
}

// Delete removes the character under the cursor, shifting the rest of
// the field left and nulling the last position, matching 3270
// character-delete semantics within a single field.
func (s *Screen) Delete() {
	f := s.FindOwner(s.cursor)
	if f.Protected() {
		s.lock(InhibitProtected)
		return
	}
	end := s.fieldEnd(f)
	pos := s.cursor
	for pos != end {
		next := s.wrap(pos + 1)
		if s.cells[next].IsAttr {
			break
		}
		s.cells[pos] = s.cells[next]
		pos = next
	}
	s.cells[pos] = Cell{}
	s.Modify(f)
}

// fieldEnd returns the last data position of field f (the position
// before the next field's attribute cell).
func (s *Screen) fieldEnd(f *Field) int {
	next := s.NextField(f.Start)
	if next == nil {
		return s.wrap(f.Start - 1 + s.Len())
	}
	return s.wrap(next.Start - 1)
}

// EraseInput clears every unprotected field to nulls and clears their
// MDT (operator EraseInput key; narrower than EAU only in that it is
// operator-, not host-, initiated -- same screen-model operation).
func (s *Screen) EraseInput() {
	s.RepeatToAddress(0, 0, 0x00, false, true)
	if f := s.NextUnprotectedField(-1); f != nil {
		s.SetCursor(s.firstDataPos(f))
	}
}

// Tab moves the cursor to the first data position of the next
// unprotected field.
func (s *Screen) Tab() {
	if f := s.NextUnprotectedField(s.cursor); f != nil {
		s.SetCursor(s.firstDataPos(f))
	}
}

// Backtab moves the cursor to the first data position of the
// previous unprotected field.
func (s *Screen) Backtab() {
	if len(s.fields) == 0 {
		return
	}
	cur := s.FindOwner(s.cursor)
	f := cur
	for {
		prev := s.prevField(f.Start)
		if !prev.Protected() {
			s.SetCursor(s.firstDataPos(prev))
			return
		}
		if prev == cur {
			return
		}
		f = prev
	}
}

func (s *Screen) prevField(addr int) *Field {
	i := sort.Search(len(s.fields), func(i int) bool { return s.fields[i].Start >= addr })
	if i == 0 {
		return s.fields[len(s.fields)-1]
	}
	return s.fields[i-1]
}

// Home moves the cursor to the first unprotected position on the
// screen.
func (s *Screen) Home() {
	if f := s.NextUnprotectedField(-1); f != nil {
		s.SetCursor(s.firstDataPos(f))
		return
	}
	s.SetCursor(0)
}

// MoveCursor sets the cursor to an explicit (row, col), clamping
// out-of-range values.
func (s *Screen) MoveCursor(row, col int) {
	if row < 0 {
		row = 0
	}
	if row >= s.rows {
		row = s.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= s.cols {
		col = s.cols - 1
	}
	s.SetCursor(row*s.cols + col)
}

// Key freezes the AID and cursor for the next read (spec §4.4
// "Operator input contract").
func (s *Screen) Key(aid byte) {
	s.RaiseAID(aid)
}

// Codepage returns the code page this screen decodes/encodes data
// bytes with.
func (s *Screen) Codepage() *codepage.Codepage { return s.codepage }
