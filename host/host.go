// This file is part of https://github.com/racingmars/go3270/
// Copyright 2020 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package host

import (
	"bytes"
	"fmt"
	"io"
	"net"

	"github.com/bcrandall/tn3270e/internal/addressing"
	"github.com/bcrandall/tn3270e/internal/screen"
)

// Color is an extended-attribute foreground color value (spec §4.3 SFE).
type Color byte

const (
	Default   Color = 0x00
	Blue      Color = 0xF1
	Red       Color = 0xF2
	Pink      Color = 0xF3
	Green     Color = 0xF4
	Turquoise Color = 0xF5
	Yellow    Color = 0xF6
	White     Color = 0xF7
)

// Highlighting is an extended-attribute highlighting value (spec §4.3 SFE).
type Highlighting byte

const (
	Normal       Highlighting = Highlighting(screen.HighlightNormal)
	Blink        Highlighting = Highlighting(screen.HighlightBlink)
	ReverseVideo Highlighting = Highlighting(screen.HighlightReverse)
	Underscore   Highlighting = Highlighting(screen.HighlightUnderscore)
)

// Field is a field on the 3270 screen.
type Field struct {
	// Row is the row, 0-based, that the field attribute character should
	// begin at.
	Row int

	// Col is the column, 0-based, that the field attribute character should
	// begin at.
	Col int

	// Content is the content of the field to display.
	Content string

	// Write allows the user to edit the value of the field.
	Write bool

	// Intense indicates this field should be displayed with high intensity.
	Intense bool

	// Name is the name of this field, which is used to get the user-entered
	// data. All writeable fields on a screen must have a unique name.
	Name string

	// Autoskip marks a field as protected and numeric so the cursor passes
	// over it automatically; conventionally used for field "stop"
	// characters with no content.
	Autoskip bool

	// Hidden causes the field's contents to be non-display (e.g. password
	// entry).
	Hidden bool

	// NumericOnly restricts operator input into this field to digits, sign,
	// and period (spec §4.4's numeric-field input contract).
	NumericOnly bool

	// Color is the extended-attribute foreground color. Zero value is the
	// client's default color.
	Color Color

	// Highlighting is the extended-attribute highlight value. Zero value
	// is normal (no highlight).
	Highlighting Highlighting
}

// Screen is an array of Fields which compose a complete 3270 screen.
// No checking is performed for overlapping fields or unique field names.
type Screen []Field

// rawAttr computes the basic (unscrambled) attribute byte for fld, per the
// bit layout in GA23-0059 (also used by internal/screen/field.go for the
// live client-side buffer model).
func rawAttr(fld Field) byte {
	var b byte
	if !fld.Write || fld.Autoskip {
		b |= 0x20 // protected
	}
	if fld.NumericOnly || fld.Autoskip {
		b |= 0x10 // numeric
	}
	if fld.Hidden {
		b |= 0x0C // non-display
	} else if fld.Intense {
		b |= 0x04 // intensified
	}
	return b
}

// extended reports whether fld needs an SFE (extended-attribute start
// field) rather than a plain SF.
func extended(fld Field) bool {
	return fld.Color != Default || fld.Highlighting != Normal
}

// sf is the "start field" 3270 order.
func sf(fld Field) []byte {
	result := make([]byte, 2)
	result[0] = 0x1D // SF
	result[1] = addressing.Encode6(rawAttr(fld))
	return result
}

// writeSFE writes an extended-attribute start field (SFE) for fld,
// carrying the basic attribute (literal, unscrambled) plus any
// color/highlighting pairs.
func writeSFE(b *bytes.Buffer, fld Field) {
	type pair struct{ t, v byte }
	pairs := []pair{{screen.XAAllAttributes, rawAttr(fld)}}
	if fld.Highlighting != Normal {
		pairs = append(pairs, pair{screen.XAHighlighting, byte(fld.Highlighting)})
	}
	if fld.Color != Default {
		pairs = append(pairs, pair{screen.XAForeground, byte(fld.Color)})
	}
	b.WriteByte(0x29) // SFE
	b.WriteByte(byte(len(pairs)))
	for _, p := range pairs {
		b.WriteByte(p.t)
		b.WriteByte(p.v)
	}
}

// sba is the "set buffer address" 3270 order.
func sba(row, col int) []byte {
	addr := row*80 + col
	enc := addressing.Encode12(addr)
	return []byte{0x11, enc[0], enc[1]} // SBA
}

// ic is the "insert cursor" 3270 order, including its SBA.
func ic(row, col int) []byte {
	result := sba(row, col)
	return append(result, 0x13) // IC
}

// getpos translates row and col into 12-bit buffer-address control
// characters. Every screen this package writes is 24x80 or the negotiated
// alternate size, always well within the 12-bit (4096-cell) range.
func getpos(row, col int) []byte {
	enc := addressing.Encode12(row*80 + col)
	return enc[:]
}

// decodeBufAddr decodes a raw 2-byte encoded buffer address into its
// integer value.
func decodeBufAddr(raw [2]byte) int {
	return addressing.Decode12(raw)
}

// WriteScreen writes the 3270 datastream for the screen to a writer, using
// the default codepage. Fields with a negative row or column, or a column
// past the last screen column, are silently ignored; rows are not checked
// against the screen height. After writing the fields, the cursor is set
// to crow, ccol, which are 0-based positions: row 0-23 and col 0-79. Errors
// from io.Writer.Write() are returned if encountered.
func WriteScreen(scr Screen, crow, ccol int, w io.Writer) error {
	return writeScreenCP(scr, crow, ccol, w, defaultCodepage, 80)
}

func writeScreenCP(scr Screen, crow, ccol int, w io.Writer, cp Codepage, cols int) error {
	var b bytes.Buffer

	b.WriteByte(0xF5) // Erase/Write to terminal
	b.WriteByte(0xC3) // WCC = Reset, Unlock Keyboard, Reset MDT

	for _, fld := range scr {
		if fld.Row < 0 || fld.Col < 0 || fld.Col >= cols {
			continue
		}
		addr := fld.Row*cols + fld.Col
		enc := addressing.Encode12(addr)
		b.WriteByte(0x11) // SBA
		b.Write(enc[:])
		if extended(fld) {
			writeSFE(&b, fld)
		} else {
			b.Write(sf(fld))
		}
		if fld.Content != "" {
			b.Write(cp.Encode(fld.Content))
		}
	}

	if crow < 0 {
		crow = 0
	}
	if ccol < 0 || ccol >= cols {
		ccol = 0
	}
	addr := crow*cols + ccol
	b.WriteByte(0x11) // SBA
	enc := addressing.Encode12(addr)
	b.Write(enc[:])
	b.WriteByte(0x13) // IC

	b.Write([]byte{0xff, 0xef}) // Telnet IAC EOR

	_, err := w.Write(b.Bytes())
	return err
}

// ScreenOpts provides additional, optional control over ShowScreenOpts
// beyond the basic ShowScreen/HandleScreen arguments.
type ScreenOpts struct {
	// CursorRow and CursorCol place the cursor, 0-based.
	CursorRow int
	CursorCol int

	// AltScreen, when non-nil, writes using the alternate (larger than
	// 24x80) screen dimensions negotiated for this client, per
	// DevInfo.AltDimensions().
	AltScreen DevInfo

	// Codepage overrides the global default codepage for this call.
	Codepage Codepage

	// NoClear uses Write instead of Erase/Write, so the rest of the
	// screen outside the fields given is left alone.
	NoClear bool

	// NoResponse skips reading a Read Modified reply after writing the
	// screen; used for fire-and-forget screen updates (spec §4.5).
	NoResponse bool
}

// ShowScreen writes screen to conn, overriding field values from the values
// map (keyed by Field.Name), placing the cursor at crow, ccol, and then
// reads and returns the client's response.
func ShowScreen(scr Screen, values map[string]string, crow, ccol int,
	conn net.Conn) (Response, error) {
	return ShowScreenOpts(scr, values, conn, ScreenOpts{CursorRow: crow, CursorCol: ccol})
}

// ShowScreenOpts is the full-control form of ShowScreen; see ScreenOpts.
func ShowScreenOpts(scr Screen, values map[string]string, conn net.Conn,
	opts ScreenOpts) (Response, error) {

	cp := opts.Codepage
	if cp == nil {
		cp = defaultCodepage
	}

	cols := 80
	if opts.AltScreen != nil {
		_, c := opts.AltScreen.AltDimensions()
		if c > 0 {
			cols = c
		}
	}

	resolved := make(Screen, len(scr))
	copy(resolved, scr)
	fm := make(fieldmap)
	for i := range resolved {
		if values != nil {
			if v, ok := values[resolved[i].Name]; ok {
				resolved[i].Content = v
			}
		}
		if resolved[i].Name != "" && resolved[i].Write {
			// Read Modified addresses a field by its first data cell,
			// one past the attribute cell.
			fm[resolved[i].Row*cols+resolved[i].Col+1] = resolved[i].Name
		}
	}

	var b bytes.Buffer
	if opts.NoClear {
		b.WriteByte(0xF1) // Write
	} else {
		b.WriteByte(0xF5) // Erase/Write
	}
	b.WriteByte(0xC3) // WCC = Reset, Unlock Keyboard, Reset MDT

	for _, fld := range resolved {
		if fld.Row < 0 || fld.Col < 0 || fld.Col >= cols {
			continue
		}
		addr := fld.Row*cols + fld.Col
		enc := addressing.Encode12(addr)
		b.WriteByte(0x11) // SBA
		b.Write(enc[:])
		if extended(fld) {
			writeSFE(&b, fld)
		} else {
			b.Write(sf(fld))
		}
		if fld.Content != "" {
			b.Write(cp.Encode(fld.Content))
		}
	}

	crow, ccol := opts.CursorRow, opts.CursorCol
	if crow < 0 {
		crow = 0
	}
	if ccol < 0 || ccol >= cols {
		ccol = 0
	}
	caddr := crow*cols + ccol
	b.WriteByte(0x11) // SBA
	cenc := addressing.Encode12(caddr)
	b.Write(cenc[:])
	b.WriteByte(0x13) // IC

	b.Write([]byte{0xff, 0xef}) // Telnet IAC EOR

	debugf("writing screen: %x\n", b.Bytes())
	if _, err := conn.Write(b.Bytes()); err != nil {
		return Response{}, fmt.Errorf("host: writing screen: %w", err)
	}

	if opts.NoResponse {
		return Response{}, nil
	}

	return readResponse(conn, fm, cp)
}
