package screen

// Attribute bit layout for the basic (6-bit, addressing-scrambled)
// 3270 field attribute byte, per IBM GA23-0059:
//
//	bit 5 (0x20): protected
//	bit 4 (0x10): numeric
//	bits 3-2 (0x0C): display/intensity: 00 normal, 01 intensified,
//	                 10/11 non-display (hidden)
//	bit 1 (0x02): reserved, always 0
//	bit 0 (0x01): MDT
const (
	attrProtectedBit   byte = 0x20
	attrNumericBit     byte = 0x10
	attrDisplayMask    byte = 0x0C
	attrDisplayHidden1 byte = 0x08
	attrMDTBit         byte = 0x01
)

// Extended-attribute type bytes recognized in SFE/SA (type,value)
// pairs, per IBM GA23-0059.
const (
	XAAllAttributes byte = 0xC0 // basic 3270 attribute, literal (unscrambled) value
	XAHighlighting  byte = 0x41
	XAForeground    byte = 0x42
	XACharSet       byte = 0x43
	XABackground    byte = 0x45
	XATransparency  byte = 0x46
	XAValidation    byte = 0xC1
)

// Highlight values for XAHighlighting.
const (
	HighlightNormal     byte = 0x00
	HighlightBlink      byte = 0xF1
	HighlightReverse    byte = 0xF2
	HighlightUnderscore byte = 0xF4
)

// ExtendedAttr holds the extended-attribute plane for a cell or field:
// color, highlight, character set, validation, and transparency, per
// spec §3.
type ExtendedAttr struct {
	Foreground   byte // color code, 0x00 = default
	Background   byte
	Highlight    byte
	CharSet      byte
	Validation   byte
	Transparency byte
}

// Apply merges one (type,value) extended-attribute pair into e
// (SA/SFE/MF semantics: a pair only ever touches its own plane).
// Unknown types are ignored, per spec §4.3 "SFE with unknown
// attribute type: ignore that pair, continue."
func (e *ExtendedAttr) Apply(xaType, value byte) {
	e.apply(xaType, value)
}

func (e *ExtendedAttr) apply(xaType, value byte) {
	switch xaType {
	case XAHighlighting:
		e.Highlight = value
	case XAForeground:
		e.Foreground = value
	case XABackground:
		e.Background = value
	case XACharSet:
		e.CharSet = value
	case XAValidation:
		e.Validation = value
	case XATransparency:
		e.Transparency = value
	}
	// Unknown extended-attribute types are ignored, per spec §4.3
	// "SFE with unknown attribute type: ignore that pair, continue."
}

// Field is a region of the presentation space beginning at a cell
// whose attribute byte is a Start-Field (SF or SFE), per spec §3.
type Field struct {
	// Start is the buffer address of the field's attribute cell.
	Start int

	Attr byte // basic (unscrambled) attribute bits
	Ext  ExtendedAttr

	// MDT is the Modified Data Tag: a property of the field, never of
	// individual cells (spec §4.4 invariant 2).
	MDT bool
}

// Protected reports whether operator input into this field is
// rejected.
func (f *Field) Protected() bool { return f.Attr&attrProtectedBit != 0 }

// Numeric reports whether this field accepts only numeric input.
func (f *Field) Numeric() bool { return f.Attr&attrNumericBit != 0 }

// Hidden reports whether this field's data is non-display.
func (f *Field) Hidden() bool { return f.Attr&attrDisplayMask&attrDisplayHidden1 != 0 }

// Intensified reports whether this field is displayed at high
// intensity.
func (f *Field) Intensified() bool { return f.Attr&attrDisplayMask == 0x04 }

// encodedAttr returns the basic attribute byte with its MDT bit set to
// match f.MDT, so that a re-encoded attribute byte (e.g. for Read Buffer) reflects
// the authoritative field-level MDT.
func (f *Field) encodedAttr() byte {
	a := f.Attr &^ attrMDTBit
	if f.MDT {
		a |= attrMDTBit
	}
	return a
}

// defaultField is the implicit field spanning the whole buffer before
// any SF/SFE has ever been written (spec §3 "the unattributed initial
// state is modeled as a single implicit default field").
var defaultField = &Field{Start: 0, Attr: 0}
