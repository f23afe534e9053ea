// Package codepage implements EBCDIC<->Unicode code-page conversion
// for the 3270 data stream (spec §4.6), including the single-byte
// Graphic Escape (GE) detour to an alternate (APL-derived) character
// set.
package codepage

import "unicode/utf8"

// Codepage is a bidirectional EBCDIC<->Unicode translation table.
type Codepage struct {
	// e2u maps an EBCDIC byte directly to its Unicode code point.
	e2u [256]rune

	// u2e maps Unicode code points 0x00-0xFF to an EBCDIC byte. Code
	// points above 0xFF are looked up in highu2e.
	u2e [256]byte

	highu2e map[rune]byte

	// esub is the EBCDIC substitute byte used when no mapping exists
	// for a requested Unicode code point (space, 0x40, per spec §4.6).
	esub byte

	// ge is the EBCDIC byte that introduces a Graphic Escape.
	ge byte

	id string
}

// ID returns the name of this code page, e.g. "037" or "1047".
func (cp *Codepage) ID() string { return cp.id }

// DecodeByte converts a single EBCDIC byte to its Unicode code point
// using the normal (non-GE) table. Undefined code points decode to
// the Unicode replacement character, per spec §4.6.
func (cp *Codepage) DecodeByte(b byte) rune {
	return cp.e2u[b]
}

// DecodeGE converts a single EBCDIC byte using the Graphic Escape
// alternate table. Scope is exactly the one byte passed in; callers
// are responsible for tracking that a GE order preceded it (spec §9:
// GE is a no-op if the following byte turns out to be an order rather
// than a data byte).
func (cp *Codepage) DecodeGE(b byte) rune {
	r := geE2U[b]
	if r == 0xFFFD {
		return 0xFFFD
	}
	return r
}

// EncodeRune converts a single Unicode code point to its EBCDIC byte
// in the normal table. Undefined code points encode to the substitute
// character (space, 0x40).
func (cp *Codepage) EncodeRune(r rune) byte {
	if r == 0 {
		return cp.u2e[0]
	}
	if int(r) > 0 && int(r) < len(cp.u2e) {
		if b := cp.u2e[r]; b != 0 {
			return b
		}
	}
	if v, ok := cp.highu2e[r]; ok {
		return v
	}
	return cp.esub
}

// EncodeGE reports whether r is representable via Graphic Escape in
// the shared alternate character set, and if so its GE-table byte.
func (cp *Codepage) EncodeGE(r rune) (b byte, ok bool) {
	b, ok = geU2E[r]
	return b, ok
}

// GEByte returns the EBCDIC byte that introduces Graphic Escape.
func (cp *Codepage) GEByte() byte { return cp.ge }

// Decode converts a slice of EBCDIC bytes into a UTF-8 string,
// resolving Graphic Escape sequences along the way. This is the
// host-facing string API; the screen/stream packages operate
// byte-at-a-time through DecodeByte/DecodeGE instead.
func (cp *Codepage) Decode(b []byte) string {
	runes := make([]rune, 0, len(b))
	var escape bool
	for _, v := range b {
		if escape {
			escape = false
			runes = append(runes, cp.DecodeGE(v))
			continue
		}
		if v == cp.ge {
			escape = true
			continue
		}
		runes = append(runes, cp.DecodeByte(v))
	}
	return string(runes)
}

// Encode converts a UTF-8 Go string into an EBCDIC byte slice,
// emitting Graphic Escape sequences as needed.
func (cp *Codepage) Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError {
			break
		}
		if b, ok := cp.EncodeGE(r); ok {
			out = append(out, cp.ge, b)
		} else {
			out = append(out, cp.EncodeRune(r))
		}
		s = s[size:]
	}
	return out
}

func newCodepage(id string, e2u [256]rune, esub byte) *Codepage {
	cp := &Codepage{
		id:      id,
		e2u:     e2u,
		esub:    esub,
		ge:      0x0e,
		highu2e: make(map[rune]byte),
	}
	for b := 0; b < 256; b++ {
		r := e2u[b]
		if int(r) >= 0 && int(r) < len(cp.u2e) {
			cp.u2e[r] = byte(b)
		} else {
			cp.highu2e[r] = byte(b)
		}
	}
	return cp
}

// CP037 is IBM code page 037 (US/Canada), the module default.
var CP037 = newCodepage("037", cp037E2A, 0x40)

// CP1047 is IBM code page 1047, a common open-systems variant of 037
// with several punctuation characters relocated (notably brackets and
// braces).
var CP1047 = newCodepage("1047", cp1047E2A, 0x40)

// byID is consulted by Lookup.
var byID = map[string]*Codepage{
	"037":  CP037,
	"1047": CP1047,
}

// Lookup returns the named code page, or CP037 if the name is
// unrecognized (spec §6: the code_page config value).
func Lookup(id string) *Codepage {
	if cp, ok := byID[id]; ok {
		return cp
	}
	return CP037
}
